package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/logger"
)

// styleSuffixes are the provider-specific phrasings appended after the
// generic entries. "%s" is replaced with the subject text.
var styleSuffixes = map[domain.QueryStyle][]string{
	domain.QueryStyleVideo:      {"%s tutorial for beginners", "%s crash course"},
	domain.QueryStyleCourse:     {"%s certification", "%s course"},
	domain.QueryStyleRepository: {"awesome %s", "%s roadmap"},
	domain.QueryStyleReference:  {"%s documentation", "%s guide"},
}

// compoundSuffixes pair a compound phrase with learning-oriented words.
var compoundSuffixes = []string{"%s tutorial", "%s course", "learn %s"}

// QueryPlanner builds per-provider query cascades for a subject.
// It is pure and deterministic given its static tables.
type QueryPlanner struct {
	special   []domain.SpecialCascade
	maxLength int
}

// NewQueryPlanner creates a planner over a special-case table.
// A malformed table is a programming error and is rejected here.
func NewQueryPlanner(special []domain.SpecialCascade, maxLength int) (*QueryPlanner, error) {
	if err := domain.ValidateSpecialCascades(special); err != nil {
		return nil, err
	}
	if maxLength <= 0 {
		return nil, fmt.Errorf("%w: cascade length must be positive, got %d", domain.ErrInvalidInput, maxLength)
	}
	return &QueryPlanner{
		special:   special,
		maxLength: maxLength,
	}, nil
}

// Plan returns one cascade per provider, keyed by provider ID.
func (p *QueryPlanner) Plan(subject domain.SubjectQuery, providers []domain.ProviderProfile) map[string]domain.QueryCascade {
	plans := make(map[string]domain.QueryCascade, len(providers))
	for _, profile := range providers {
		plans[profile.ID] = p.Cascade(subject, profile)
	}
	return plans
}

// Cascade builds the cascade for a single provider.
func (p *QueryPlanner) Cascade(subject domain.SubjectQuery, profile domain.ProviderProfile) domain.QueryCascade {
	text := subject.Text()

	if subject.Kind() == domain.SubjectSkill {
		if entry, ok := domain.MatchSpecialCascade(p.special, subject); ok {
			logger.Debug("Planner: special cascade for %q (%s)", text, profile.ID)
			return p.finish(entry.Queries)
		}
	}

	var queries []string
	switch subject.Kind() {
	case domain.SubjectRole:
		queries = append(queries,
			becomePhrase(text),
			text+" career path",
			text+" roadmap",
		)
	default:
		queries = append(queries, text)
		if subject.IsCompound() {
			for _, suffix := range compoundSuffixes {
				queries = append(queries, fmt.Sprintf(suffix, text))
			}
		}
	}

	for _, suffix := range styleSuffixes[profile.Style] {
		queries = append(queries, fmt.Sprintf(suffix, text))
	}

	return p.finish(queries)
}

// finish removes duplicates and caps the cascade length.
func (p *QueryPlanner) finish(queries []string) domain.QueryCascade {
	seen := make(map[string]bool, len(queries))
	out := make(domain.QueryCascade, 0, p.maxLength)
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
		if len(out) == p.maxLength {
			break
		}
	}
	return out
}

func becomePhrase(role string) string {
	article := "a"
	if role != "" && strings.ContainsRune("aeiou", rune(role[0])) {
		article = "an"
	}
	return "become " + article + " " + role
}
