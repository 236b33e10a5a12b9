package services

import (
	"sort"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// MergeRanker combines per-provider cascade outcomes into one ranked list.
// Provider priority is the position of the outcome in the input slice.
type MergeRanker struct {
	settings domain.RankSettings
}

// NewMergeRanker creates a ranker with the given truncation settings.
func NewMergeRanker(settings domain.RankSettings) *MergeRanker {
	return &MergeRanker{settings: settings}
}

// ranked carries a resource together with its provider priority.
type ranked struct {
	res      domain.Resource
	priority int
}

// Rank scores, deduplicates, sorts and truncates. limit is resolved against
// the rank settings (zero means the default).
func (m *MergeRanker) Rank(outcomes []domain.CascadeOutcome, limit int) []domain.Resource {
	byURL := make(map[string]int)
	var pool []ranked

	for priority, outcome := range outcomes {
		for _, res := range outcome.Resources {
			res.CompositeScore = Composite(res, outcome.Provider.HasMetrics)
			if res.Source == "" {
				res.Source = outcome.Provider.Name
			}
			if res.Source == "" {
				res.Source = domain.InferSource(res.URL)
			}

			candidate := ranked{res: res, priority: priority}
			if i, ok := byURL[res.URL]; ok {
				if beats(candidate, pool[i]) {
					pool[i] = candidate
				}
				continue
			}
			byURL[res.URL] = len(pool)
			pool = append(pool, candidate)
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return beats(pool[i], pool[j])
	})

	k := m.settings.ClampLimit(limit)
	if len(pool) > k {
		pool = pool[:k]
	}

	out := make([]domain.Resource, len(pool))
	for i, r := range pool {
		out[i] = r.res
	}
	return out
}

// Composite computes the final ranking score. Providers without popularity
// metrics rank on relevance alone.
func Composite(res domain.Resource, hasMetrics bool) float64 {
	if !hasMetrics {
		return res.RelevanceScore
	}
	return res.RelevanceScore * (1 + res.QualityScore/100)
}

// beats reports whether a orders before b: higher composite, then higher
// provider priority (lower index), then title.
func beats(a, b ranked) bool {
	if a.res.CompositeScore != b.res.CompositeScore {
		return a.res.CompositeScore > b.res.CompositeScore
	}
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.res.Title < b.res.Title
}
