package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
	"github.com/custodia-labs/skillscout/internal/core/ports/driving"
	"github.com/custodia-labs/skillscout/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Credential keys and the environment variables that back them.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyYouTubeAPIKey = "youtube.api_key"
	keyGitHubToken   = "github.token"

	envYouTubeAPIKey = "YOUTUBE_API_KEY"
	envGitHubToken   = "GITHUB_TOKEN"
)

// settingKind selects how a value is parsed, validated and stored.
type settingKind int

const (
	kindInt settingKind = iota
	kindFloat
	kindDuration
	kindString
	kindSecret
	kindList
	kindBackend
)

// settingDef binds a dotted config key to a DiscoverySettings field.
type settingDef struct {
	key  string
	kind settingKind
	get  func(*domain.DiscoverySettings) any
	set  func(*domain.DiscoverySettings, any)
}

func intSetting(key string, field func(*domain.DiscoverySettings) *int) settingDef {
	return settingDef{
		key:  key,
		kind: kindInt,
		get:  func(d *domain.DiscoverySettings) any { return *field(d) },
		set:  func(d *domain.DiscoverySettings, v any) { *field(d) = v.(int) },
	}
}

func floatSetting(key string, field func(*domain.DiscoverySettings) *float64) settingDef {
	return settingDef{
		key:  key,
		kind: kindFloat,
		get:  func(d *domain.DiscoverySettings) any { return *field(d) },
		set:  func(d *domain.DiscoverySettings, v any) { *field(d) = v.(float64) },
	}
}

func durationSetting(key string, field func(*domain.DiscoverySettings) *time.Duration) settingDef {
	return settingDef{
		key:  key,
		kind: kindDuration,
		get:  func(d *domain.DiscoverySettings) any { return *field(d) },
		set:  func(d *domain.DiscoverySettings, v any) { *field(d) = v.(time.Duration) },
	}
}

func secretSetting(key string, field func(*domain.DiscoverySettings) *string) settingDef {
	return settingDef{
		key:  key,
		kind: kindSecret,
		get:  func(d *domain.DiscoverySettings) any { return *field(d) },
		set:  func(d *domain.DiscoverySettings, v any) { *field(d) = v.(string) },
	}
}

// rateLimitSettings binds the two token bucket keys of one provider.
func rateLimitSettings(providerID string) []settingDef {
	update := func(d *domain.DiscoverySettings, apply func(*domain.RateLimit)) {
		limits := make(map[string]domain.RateLimit, len(d.Providers.RateLimits)+1)
		for id, rl := range d.Providers.RateLimits {
			limits[id] = rl
		}
		rl := d.Providers.RateLimitFor(providerID)
		apply(&rl)
		limits[providerID] = rl
		d.Providers.RateLimits = limits
	}
	return []settingDef{
		{
			key:  "ratelimit." + providerID + ".rps",
			kind: kindFloat,
			get: func(d *domain.DiscoverySettings) any {
				return d.Providers.RateLimitFor(providerID).RequestsPerSecond
			},
			set: func(d *domain.DiscoverySettings, v any) {
				update(d, func(rl *domain.RateLimit) { rl.RequestsPerSecond = v.(float64) })
			},
		},
		{
			key:  "ratelimit." + providerID + ".burst",
			kind: kindInt,
			get: func(d *domain.DiscoverySettings) any {
				return d.Providers.RateLimitFor(providerID).Burst
			},
			set: func(d *domain.DiscoverySettings, v any) {
				update(d, func(rl *domain.RateLimit) { rl.Burst = v.(int) })
			},
		},
	}
}

// settingDefs is the full key registry in display order.
var settingDefs = buildSettingDefs()

func buildSettingDefs() []settingDef {
	type ds = domain.DiscoverySettings
	defs := []settingDef{
		intSetting("discovery.limit", func(d *ds) *int { return &d.Rank.DefaultLimit }),
		intSetting("discovery.max_limit", func(d *ds) *int { return &d.Rank.MaxLimit }),
		durationSetting("discovery.timeout", func(d *ds) *time.Duration { return &d.Timeout }),

		intSetting("cascade.sufficient", func(d *ds) *int { return &d.Cascade.SufficientCandidates }),
		intSetting("cascade.max_length", func(d *ds) *int { return &d.Cascade.MaxLength }),
		durationSetting("cascade.call_timeout", func(d *ds) *time.Duration { return &d.Cascade.CallTimeout }),
		durationSetting("cascade.timeout", func(d *ds) *time.Duration { return &d.Cascade.Timeout }),

		floatSetting("scoring.relevance.exact_title", func(d *ds) *float64 { return &d.Relevance.ExactTitle }),
		floatSetting("scoring.relevance.phrase_in_title", func(d *ds) *float64 { return &d.Relevance.PhraseInTitle }),
		floatSetting("scoring.relevance.keyword_in_title", func(d *ds) *float64 { return &d.Relevance.KeywordInTitle }),
		floatSetting("scoring.relevance.keyword_in_description",
			func(d *ds) *float64 { return &d.Relevance.KeywordInDescription }),
		floatSetting("scoring.relevance.domain_term", func(d *ds) *float64 { return &d.Relevance.DomainTerm }),

		floatSetting("scoring.quality.views", func(d *ds) *float64 { return &d.Quality.Views }),
		floatSetting("scoring.quality.engagement", func(d *ds) *float64 { return &d.Quality.Engagement }),
		floatSetting("scoring.quality.comments", func(d *ds) *float64 { return &d.Quality.Comments }),
		floatSetting("scoring.quality.recency", func(d *ds) *float64 { return &d.Quality.Recency }),
		floatSetting("scoring.quality.recency_window_days", func(d *ds) *float64 { return &d.Quality.RecencyWindowDays }),
		floatSetting("scoring.quality.tutorial_boost", func(d *ds) *float64 { return &d.Quality.TutorialBoost }),
		floatSetting("scoring.quality.comprehensive_boost",
			func(d *ds) *float64 { return &d.Quality.ComprehensiveBoost }),
		floatSetting("scoring.quality.fresh_boost", func(d *ds) *float64 { return &d.Quality.FreshBoost }),
		floatSetting("scoring.quality.fresh_window_days", func(d *ds) *float64 { return &d.Quality.FreshWindowDays }),
		floatSetting("scoring.quality.baseline", func(d *ds) *float64 { return &d.Quality.Baseline }),

		floatSetting("labels.highly_recommended", func(d *ds) *float64 { return &d.Labels.HighlyRecommended }),
		floatSetting("labels.recommended", func(d *ds) *float64 { return &d.Labels.Recommended }),

		{
			key:  "providers.enabled",
			kind: kindList,
			get:  func(d *ds) any { return d.Providers.Enabled },
			set:  func(d *ds, v any) { d.Providers.Enabled = v.([]string) },
		},
		intSetting("providers.max_results", func(d *ds) *int { return &d.Providers.MaxResults }),
		secretSetting(keyYouTubeAPIKey, func(d *ds) *string { return &d.Providers.YouTubeAPIKey }),
		secretSetting(keyGitHubToken, func(d *ds) *string { return &d.Providers.GitHubToken }),
	}

	for _, id := range domain.KnownProviders {
		defs = append(defs, rateLimitSettings(id)...)
	}

	defs = append(defs,
		settingDef{
			key:  "cache.backend",
			kind: kindBackend,
			get:  func(d *ds) any { return string(d.Cache.Backend) },
			set:  func(d *ds, v any) { d.Cache.Backend = domain.CacheBackend(v.(string)) },
		},
		durationSetting("cache.ttl", func(d *ds) *time.Duration { return &d.Cache.TTL }),
		intSetting("cache.max_entries", func(d *ds) *int { return &d.Cache.MaxEntries }),
	)
	return defs
}

func findSetting(key string) (settingDef, bool) {
	for _, def := range settingDefs {
		if def.key == key {
			return def, true
		}
	}
	return settingDef{}, false
}

// SettingsService maps dotted configuration keys onto DiscoverySettings.
// Unset or invalid keys fall back to the defaults; credentials fall back to
// environment variables.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// SetEnv replaces the environment lookup used for credential fallback.
func (s *SettingsService) SetEnv(getenv func(string) string) {
	s.getenv = getenv
}

// Get retrieves current discovery settings.
func (s *SettingsService) Get() (*domain.DiscoverySettings, error) {
	settings := domain.DefaultDiscoverySettings()

	for _, def := range settingDefs {
		value, ok := s.read(def)
		if !ok {
			continue
		}
		def.set(&settings, value)
	}

	if settings.Providers.YouTubeAPIKey == "" {
		settings.Providers.YouTubeAPIKey = s.getenv(envYouTubeAPIKey)
	}
	if settings.Providers.GitHubToken == "" {
		settings.Providers.GitHubToken = s.getenv(envGitHubToken)
	}

	if settings.Rank.MaxLimit < settings.Rank.DefaultLimit {
		settings.Rank.MaxLimit = settings.Rank.DefaultLimit
	}

	return &settings, nil
}

// Set validates value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	def, ok := findSetting(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseSetting(def.kind, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	// Durations are stored in their text form so the file stays readable.
	stored := parsed
	if d, ok := parsed.(time.Duration); ok {
		stored = d.String()
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	logger.Debug("Setting %s updated", key)
	return nil
}

// Keys lists every settable key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingDefs))
	for i, def := range settingDefs {
		keys[i] = def.key
	}
	return keys
}

// Entries returns every key with its effective value.
func (s *SettingsService) Entries() ([]domain.SettingEntry, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.SettingEntry, 0, len(settingDefs))
	for _, def := range settingDefs {
		_, isSet := s.read(def)
		entries = append(entries, domain.SettingEntry{
			Key:    def.key,
			Value:  formatSetting(def.get(settings)),
			IsSet:  isSet,
			Secret: def.kind == kindSecret,
		})
	}
	return entries, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.DiscoverySettings {
	return domain.DefaultDiscoverySettings()
}

// read returns the typed stored value of def, or false when the key is
// unset or holds an unusable value.
func (s *SettingsService) read(def settingDef) (any, bool) {
	raw, exists := s.configStore.Get(def.key)
	if !exists {
		return nil, false
	}

	switch def.kind {
	case kindInt:
		if v := s.configStore.GetInt(def.key); v > 0 {
			return v, true
		}
	case kindFloat:
		if v := s.configStore.GetFloat(def.key); v >= 0 && isNumber(raw) {
			return v, true
		}
	case kindDuration:
		d, err := time.ParseDuration(s.configStore.GetString(def.key))
		if err == nil && d > 0 {
			return d, true
		}
	case kindString, kindSecret:
		if v := s.configStore.GetString(def.key); v != "" {
			return v, true
		}
	case kindList:
		if list, err := validProviderList(s.configStore.GetStringSlice(def.key)); err == nil {
			return list, true
		}
	case kindBackend:
		if v := s.configStore.GetString(def.key); domain.CacheBackend(v).IsValid() {
			return v, true
		}
	}

	logger.Warn("Ignoring invalid value for %s", def.key)
	return nil, false
}

// parseSetting converts user input into the typed value for kind.
func parseSetting(kind settingKind, value string) (any, error) {
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", value)
		}
		if n <= 0 {
			return nil, fmt.Errorf("must be positive, got %d", n)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", value)
		}
		if f < 0 {
			return nil, fmt.Errorf("must not be negative, got %g", f)
		}
		return f, nil
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("not a duration: %q", value)
		}
		if d <= 0 {
			return nil, fmt.Errorf("must be positive, got %s", d)
		}
		return d, nil
	case kindList:
		return validProviderList(strings.Split(value, ","))
	case kindBackend:
		if !domain.CacheBackend(value).IsValid() {
			return nil, fmt.Errorf("unknown cache backend %q", value)
		}
		return value, nil
	default:
		if value == "" {
			return nil, fmt.Errorf("must not be empty")
		}
		return value, nil
	}
}

// validProviderList trims and checks a provider ID list.
func validProviderList(items []string) ([]string, error) {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		id := strings.ToLower(strings.TrimSpace(item))
		if id == "" {
			continue
		}
		if !domain.IsKnownProvider(id) {
			return nil, fmt.Errorf("unknown provider %q", id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}
	return out, nil
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int64, float64:
		return true
	default:
		return false
	}
}

func formatSetting(v any) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ",")
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
