package driven

import "time"

// Observer receives measurements from the discovery pipeline.
// Implementations must be safe for concurrent use.
type Observer interface {
	// ProviderCall records one provider search call and its outcome
	// ("ok", "empty", "error", "timeout", "panic").
	ProviderCall(providerID, outcome string, elapsed time.Duration)

	// CascadeFinished records the terminal state of a provider cascade.
	CascadeFinished(providerID, state string, attempts int)

	// DiscoveryFinished records a completed discovery. origin is
	// "providers", "cache", "fallback" or "none".
	DiscoveryFinished(kind, origin string, results int, elapsed time.Duration)

	// BreakerStateChanged records a provider circuit breaker transition
	// ("closed", "half-open", "open").
	BreakerStateChanged(providerID, from, to string)
}
