package mcp

import (
	"context"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driving"
)

var _ driving.DiscoveryService = (*mockDiscoveryService)(nil)

// mockDiscoveryService is a mock implementation of driving.DiscoveryService.
type mockDiscoveryService struct {
	results  []domain.Resource
	profiles []domain.ProviderProfile
	lastReq  domain.DiscoveryRequest
}

func (m *mockDiscoveryService) Discover(_ context.Context, req domain.DiscoveryRequest) []domain.Resource {
	m.lastReq = req
	if m.results == nil {
		return []domain.Resource{}
	}
	return m.results
}

func (m *mockDiscoveryService) Providers() []domain.ProviderProfile {
	return m.profiles
}
