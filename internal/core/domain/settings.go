package domain

import "time"

// RelevanceWeights are the additive relevance scoring weights.
type RelevanceWeights struct {
	// ExactTitle is awarded when the title equals the subject text.
	ExactTitle float64

	// PhraseInTitle is awarded when the title contains the subject text.
	PhraseInTitle float64

	// KeywordInTitle is awarded per keyword found in the title.
	KeywordInTitle float64

	// KeywordInDescription is awarded per keyword found in the description.
	KeywordInDescription float64

	// DomainTerm is awarded per occurrence of a domain-category term.
	DomainTerm float64
}

// QualityWeights configure the quality formula and its boosts.
type QualityWeights struct {
	Views      float64
	Engagement float64
	Comments   float64
	Recency    float64

	// RecencyWindowDays is the age at which the recency factor reaches zero.
	RecencyWindowDays float64

	TutorialBoost      float64
	ComprehensiveBoost float64

	// FreshBoost applies when the resource is younger than FreshWindowDays.
	FreshBoost      float64
	FreshWindowDays float64

	// Baseline is the flat quality score for providers without metrics.
	Baseline float64
}

// CascadeSettings bound the per-provider query cascade.
type CascadeSettings struct {
	// SufficientCandidates stops the cascade once this many survivors exist.
	SufficientCandidates int

	// MaxLength caps the number of queries in one cascade.
	MaxLength int

	// CallTimeout bounds a single provider call.
	CallTimeout time.Duration

	// Timeout bounds a whole provider cascade.
	Timeout time.Duration
}

// RankSettings configure truncation of the merged list.
type RankSettings struct {
	// DefaultLimit is K when the request does not ask for one.
	DefaultLimit int

	// MaxLimit caps any requested K.
	MaxLimit int
}

// Quality labels derived from composite score thresholds.
const (
	LabelHighlyRecommended = "Highly Recommended"
	LabelRecommended       = "Recommended"
	LabelGoodResource      = "Good Resource"
)

// LabelThresholds map composite scores to coarse quality labels.
type LabelThresholds struct {
	HighlyRecommended float64
	Recommended       float64
}

// RateLimit is a token bucket configuration for one provider.
type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
}

// ProviderSettings select and configure provider adapters.
type ProviderSettings struct {
	// Enabled lists provider IDs in priority order.
	Enabled []string

	// MaxResults is the page size requested from each provider.
	MaxResults int

	// YouTubeAPIKey authenticates the YouTube Data API.
	YouTubeAPIKey string

	// GitHubToken is optional; unauthenticated search has a lower quota.
	GitHubToken string

	// RateLimits override the default per-provider token buckets.
	RateLimits map[string]RateLimit
}

// CacheBackend selects the result cache implementation.
type CacheBackend string

// Available cache backends.
const (
	CacheNone   CacheBackend = "none"
	CacheMemory CacheBackend = "memory"
	CacheSQLite CacheBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b CacheBackend) IsValid() bool {
	switch b {
	case CacheNone, CacheMemory, CacheSQLite:
		return true
	default:
		return false
	}
}

// CacheSettings configure the discovery result cache.
type CacheSettings struct {
	Backend    CacheBackend
	TTL        time.Duration
	MaxEntries int
}

// DiscoverySettings holds every tunable of the discovery engine.
// The defaults are empirically chosen reference values, not laws.
type DiscoverySettings struct {
	Relevance RelevanceWeights
	Quality   QualityWeights
	Cascade   CascadeSettings
	Rank      RankSettings
	Labels    LabelThresholds
	Providers ProviderSettings
	Cache     CacheSettings

	// Timeout is the global deadline for one discovery.
	Timeout time.Duration
}

// DefaultDiscoverySettings returns the reference configuration.
func DefaultDiscoverySettings() DiscoverySettings {
	return DiscoverySettings{
		Relevance: RelevanceWeights{
			ExactTitle:           100,
			PhraseInTitle:        50,
			KeywordInTitle:       15,
			KeywordInDescription: 5,
			DomainTerm:           10,
		},
		Quality: QualityWeights{
			Views:              0.35,
			Engagement:         0.35,
			Comments:           0.15,
			Recency:            0.15,
			RecencyWindowDays:  730,
			TutorialBoost:      1.2,
			ComprehensiveBoost: 1.25,
			FreshBoost:         1.1,
			FreshWindowDays:    365,
			Baseline:           1,
		},
		Cascade: CascadeSettings{
			SufficientCandidates: 3,
			MaxLength:            6,
			CallTimeout:          8 * time.Second,
			Timeout:              20 * time.Second,
		},
		Rank: RankSettings{
			DefaultLimit: 5,
			MaxLimit:     10,
		},
		Labels: LabelThresholds{
			HighlyRecommended: 150,
			Recommended:       75,
		},
		Providers: ProviderSettings{
			Enabled:    []string{ProviderYouTube, ProviderCoursera, ProviderGitHub, ProviderMDN},
			MaxResults: 10,
			RateLimits: map[string]RateLimit{
				ProviderYouTube:  {RequestsPerSecond: 5, Burst: 5},
				ProviderCoursera: {RequestsPerSecond: 2, Burst: 4},
				ProviderGitHub:   {RequestsPerSecond: 0.5, Burst: 3}, // search API: 30/min authenticated
				ProviderMDN:      {RequestsPerSecond: 2, Burst: 4},
			},
		},
		Cache: CacheSettings{
			Backend:    CacheMemory,
			TTL:        6 * time.Hour,
			MaxEntries: 256,
		},
		Timeout: 25 * time.Second,
	}
}

// RateLimitFor returns the configured token bucket for a provider, falling
// back to a conservative default.
func (p ProviderSettings) RateLimitFor(providerID string) RateLimit {
	if rl, ok := p.RateLimits[providerID]; ok && rl.RequestsPerSecond > 0 {
		if rl.Burst <= 0 {
			rl.Burst = 1
		}
		return rl
	}
	return RateLimit{RequestsPerSecond: 1, Burst: 2}
}

// IsEnabled reports whether a provider is in the enabled list.
func (p ProviderSettings) IsEnabled(providerID string) bool {
	for _, id := range p.Enabled {
		if id == providerID {
			return true
		}
	}
	return false
}

// ClampLimit resolves a requested result count against the rank settings.
func (r RankSettings) ClampLimit(requested int) int {
	if requested <= 0 {
		return r.DefaultLimit
	}
	if r.MaxLimit > 0 && requested > r.MaxLimit {
		return r.MaxLimit
	}
	return requested
}

// SettingEntry is one settable key with its effective value rendered as text.
type SettingEntry struct {
	Key   string
	Value string

	// IsSet reports whether the value comes from configuration rather than
	// the defaults.
	IsSet bool

	// Secret marks credentials that should be masked when displayed.
	Secret bool
}
