package driving

import (
	"context"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// DiscoveryService finds and ranks learning resources for a subject.
type DiscoveryService interface {
	// Discover returns ranked resources in non-increasing composite score order.
	// It never returns an error: provider failures degrade to fewer results,
	// and total failure yields an empty slice.
	Discover(ctx context.Context, req domain.DiscoveryRequest) []domain.Resource

	// Providers returns the profiles of the active providers in priority order.
	Providers() []domain.ProviderProfile
}
