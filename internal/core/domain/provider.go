package domain

// Built-in provider identifiers.
const (
	ProviderYouTube  = "youtube"
	ProviderCoursera = "coursera"
	ProviderGitHub   = "github"
	ProviderMDN      = "mdn"
)

// KnownProviders lists every built-in provider in default priority order.
var KnownProviders = []string{ProviderYouTube, ProviderCoursera, ProviderGitHub, ProviderMDN}

// IsKnownProvider reports whether id names a built-in provider.
func IsKnownProvider(id string) bool {
	for _, known := range KnownProviders {
		if known == id {
			return true
		}
	}
	return false
}

// QueryStyle tells the planner which phrasings suit a provider.
type QueryStyle string

// Available query styles.
const (
	// QueryStyleVideo favours tutorial and crash-course phrasing.
	QueryStyleVideo QueryStyle = "video"

	// QueryStyleCourse favours course and certification phrasing.
	QueryStyleCourse QueryStyle = "course"

	// QueryStyleRepository favours curated-list and roadmap phrasing.
	QueryStyleRepository QueryStyle = "repository"

	// QueryStyleReference favours documentation and guide phrasing.
	QueryStyleReference QueryStyle = "reference"
)

// ProviderProfile describes a provider to the planner and the ranker.
type ProviderProfile struct {
	// ID is the unique provider identifier (e.g. "youtube").
	ID string

	// Name is the human-readable display name, used as the source label.
	Name string

	// Style selects provider-specific query phrasing.
	Style QueryStyle

	// HasMetrics reports whether the provider exposes popularity metrics.
	// Providers without metrics get a flat quality baseline and their
	// composite score equals their relevance score.
	HasMetrics bool
}

// QueryCascade is an ordered, non-empty list of query strings, most
// specific first. It is never mutated after planning.
type QueryCascade []string

// CascadeState is the terminal state of one provider's cascade.
type CascadeState string

// Cascade terminal states.
const (
	// CascadeSufficient means enough relevant candidates were collected.
	CascadeSufficient CascadeState = "sufficient"

	// CascadeExhausted means every query ran without reaching the threshold.
	CascadeExhausted CascadeState = "exhausted"

	// CascadeTimedOut means the cascade deadline expired mid-cascade.
	CascadeTimedOut CascadeState = "timed_out"

	// CascadeFailed means the provider task crashed; its results are discarded.
	CascadeFailed CascadeState = "failed"
)

// CascadeOutcome is what one provider contributes to a discovery.
type CascadeOutcome struct {
	// Provider is the provider that ran the cascade.
	Provider ProviderProfile

	// State is the terminal cascade state.
	State CascadeState

	// Attempts is the number of provider calls issued.
	Attempts int

	// Queries are the queries actually issued, in order.
	Queries []string

	// Resources are the relevance-eligible, quality-scored survivors.
	Resources []Resource
}

// DiscoveryRequest is what an external collaborator asks for.
type DiscoveryRequest struct {
	// Subject is the skill, role or phrase.
	Subject string

	// Kind selects skill, role or free-text handling.
	Kind SubjectKind

	// Limit caps the result count. Zero uses the configured default.
	Limit int
}
