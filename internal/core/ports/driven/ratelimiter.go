package driven

import (
	"context"
	"time"
)

// RateLimiter throttles calls per provider.
type RateLimiter interface {
	// Wait blocks until a call to the provider is allowed or ctx is done.
	Wait(ctx context.Context, providerID string) error

	// Backoff suspends the provider for d after an upstream rate-limit reply.
	// A non-positive d selects the limiter's default backoff.
	Backoff(providerID string, d time.Duration)
}
