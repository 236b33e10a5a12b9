package driving

import "github.com/custodia-labs/skillscout/internal/core/domain"

// SettingsService manages discovery settings.
type SettingsService interface {
	// Get retrieves current discovery settings, with defaults for unset keys.
	Get() (*domain.DiscoverySettings, error)

	// Set validates and stores a single dotted key.
	Set(key, value string) error

	// Keys lists every settable key in display order.
	Keys() []string

	// Entries returns every key with its effective value, in display order.
	Entries() ([]domain.SettingEntry, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.DiscoverySettings
}
