package services

import (
	"strings"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// RelevanceScorer scores a resource against the original subject, not the
// cascade query that happened to find it.
type RelevanceScorer struct {
	weights domain.RelevanceWeights
}

// NewRelevanceScorer creates a scorer with the given weights.
func NewRelevanceScorer(weights domain.RelevanceWeights) *RelevanceScorer {
	return &RelevanceScorer{weights: weights}
}

// Score returns a non-negative relevance score. Zero means the resource is
// not eligible at all and must be dropped.
//
// Compound subjects require every keyword somewhere in title+description.
// Single-keyword subjects need one match. The domain bonus only adds to a
// resource that already matched.
func (s *RelevanceScorer) Score(r *domain.Resource, subject domain.SubjectQuery) float64 {
	title := strings.ToLower(r.Title)
	desc := strings.ToLower(r.Description)
	keywords := subject.Keywords()

	matched := 0
	for _, kw := range keywords {
		if domain.ContainsTerm(title, kw) || domain.ContainsTerm(desc, kw) {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	if subject.IsCompound() && matched < len(keywords) {
		return 0
	}

	var score float64

	phrase := subject.Text()
	switch {
	case strings.TrimSpace(title) == phrase:
		score += s.weights.ExactTitle
	case domain.ContainsTerm(title, phrase):
		score += s.weights.PhraseInTitle
	}

	for _, kw := range keywords {
		if domain.ContainsTerm(title, kw) {
			score += s.weights.KeywordInTitle
		}
		if domain.ContainsTerm(desc, kw) {
			score += s.weights.KeywordInDescription
		}
	}

	combined := title + " " + desc
	for _, term := range domain.CategoryTerms(subject.DomainCategory()) {
		score += s.weights.DomainTerm * float64(domain.CountTerm(combined, term))
	}

	return score
}
