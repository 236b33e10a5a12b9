package driven

import (
	"context"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// Provider searches one external content source.
// Each provider (youtube, coursera, github, mdn) implements this interface.
// Providers know nothing about ranking or cascades.
type Provider interface {
	// ID returns the provider identifier.
	ID() string

	// Profile describes the provider to the planner and the ranker.
	Profile() domain.ProviderProfile

	// Search runs one upstream query and returns provider-native candidates.
	// Ordinary upstream failures (transport, quota, auth, empty payload) are
	// returned as errors wrapping a domain sentinel; the cascade controller
	// logs them and treats the call as returning nothing.
	Search(ctx context.Context, query string) ([]domain.RawCandidate, error)

	// Normalize maps a candidate into the canonical shape.
	// Returns false when the candidate lacks a title or a usable URL.
	Normalize(raw domain.RawCandidate) (domain.Resource, bool)
}
