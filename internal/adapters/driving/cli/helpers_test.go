package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driving"
)

var (
	_ driving.DiscoveryService = (*mockDiscoveryService)(nil)
	_ driving.SettingsService  = (*mockSettingsService)(nil)
)

// mockDiscoveryService records the last request and returns canned results.
type mockDiscoveryService struct {
	results []domain.Resource
	lastReq domain.DiscoveryRequest
}

func (m *mockDiscoveryService) Discover(_ context.Context, req domain.DiscoveryRequest) []domain.Resource {
	m.lastReq = req
	if m.results == nil {
		return []domain.Resource{}
	}
	return m.results
}

func (m *mockDiscoveryService) Providers() []domain.ProviderProfile {
	return nil
}

// mockSettingsService keeps entries in memory.
type mockSettingsService struct {
	entries []domain.SettingEntry
	setErr  error
	sets    map[string]string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		entries: []domain.SettingEntry{
			{Key: "discovery.limit", Value: "8", IsSet: true},
			{Key: "discovery.timeout", Value: "25s"},
			{Key: "youtube.api_key", Value: "AIzaSyExampleKey1234", IsSet: true, Secret: true},
			{Key: "github.token", Value: "", Secret: true},
		},
		sets: make(map[string]string),
	}
}

func (m *mockSettingsService) Get() (*domain.DiscoverySettings, error) {
	s := domain.DefaultDiscoverySettings()
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets[key] = strings.TrimSpace(value)
	return nil
}

func (m *mockSettingsService) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

func (m *mockSettingsService) Entries() ([]domain.SettingEntry, error) {
	return m.entries, nil
}

func (m *mockSettingsService) GetDefaults() domain.DiscoverySettings {
	return domain.DefaultDiscoverySettings()
}

func sampleResults() []domain.Resource {
	return []domain.Resource{
		{
			Title:          "Docker Tutorial for Beginners",
			URL:            "https://www.youtube.com/watch?v=pTFZFxd4hOI",
			Author:         "Programming with Mosh",
			Description:    "Learn Docker from scratch in one hour",
			Source:         "YouTube",
			DurationText:   "1h 05m",
			ViewsText:      "3.4M",
			QualityLabel:   domain.LabelHighlyRecommended,
			CompositeScore: 190,
		},
		{
			Title:          "prakhar1989/docker-curriculum",
			URL:            "https://github.com/prakhar1989/docker-curriculum",
			Source:         "GitHub",
			QualityLabel:   domain.LabelRecommended,
			CompositeScore: 95,
		},
		{
			Title:          "Docker Crash Course",
			URL:            "https://www.youtube.com/watch?v=abc",
			Source:         "YouTube",
			QualityLabel:   domain.LabelGoodResource,
			CompositeScore: 60,
		},
	}
}

// setupTestServices installs mocks and returns them with a restore func.
func setupTestServices() (*mockDiscoveryService, *mockSettingsService, func()) {
	oldSettings, oldFactory := settingsService, newRuntime

	discovery := &mockDiscoveryService{results: sampleResults()}
	settings := newMockSettingsService()
	SetServices(settings, func(context.Context) (*Runtime, error) {
		return &Runtime{Discovery: discovery}, nil
	})

	return discovery, settings, func() {
		settingsService, newRuntime = oldSettings, oldFactory
	}
}

var errFactory = errors.New("providers unavailable")
