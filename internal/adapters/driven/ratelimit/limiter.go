// Package ratelimit provides the per-provider token bucket RateLimiter.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
	"github.com/custodia-labs/skillscout/internal/logger"
)

// Ensure Limiter implements the interface.
var _ driven.RateLimiter = (*Limiter)(nil)

// DefaultBackoff is applied when a provider reports throttling without a
// retry hint.
const DefaultBackoff = 60 * time.Second

// bucket is the limiter state of one provider.
type bucket struct {
	limiter *rate.Limiter
	retryAt time.Time
}

// Limiter rate limits outbound calls per provider with a token bucket,
// plus a backoff window after the provider reports throttling.
type Limiter struct {
	mu       sync.Mutex
	settings domain.ProviderSettings
	buckets  map[string]*bucket
	now      func() time.Time
}

// New creates a limiter using the token bucket settings of each provider.
func New(settings domain.ProviderSettings) *Limiter {
	return &Limiter{
		settings: settings,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

// bucketFor returns the provider's bucket, creating it on first use
// (caller must hold lock).
func (l *Limiter) bucketFor(providerID string) *bucket {
	b, ok := l.buckets[providerID]
	if !ok {
		cfg := l.settings.RateLimitFor(providerID)
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)}
		l.buckets[providerID] = b
	}
	return b
}

// Wait blocks until providerID may be called. When the provider is in a
// backoff window that outlasts ctx, Wait fails fast with ErrRateLimited
// instead of sleeping until the deadline.
func (l *Limiter) Wait(ctx context.Context, providerID string) error {
	l.mu.Lock()
	b := l.bucketFor(providerID)
	retryAt := b.retryAt
	now := l.now()
	l.mu.Unlock()

	if now.Before(retryAt) {
		if deadline, ok := ctx.Deadline(); ok && deadline.Before(retryAt) {
			return fmt.Errorf("%w: %s backing off until %s",
				domain.ErrRateLimited, providerID, retryAt.Format(time.RFC3339))
		}
		timer := time.NewTimer(retryAt.Sub(now))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return b.limiter.Wait(ctx)
}

// Backoff pauses calls to providerID for d. A non-positive d uses
// DefaultBackoff. An existing longer backoff is kept.
func (l *Limiter) Backoff(providerID string, d time.Duration) {
	if d <= 0 {
		d = DefaultBackoff
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.bucketFor(providerID)
	retryAt := l.now().Add(d)
	if retryAt.After(b.retryAt) {
		b.retryAt = retryAt
	}
	logger.Warn("Rate limit: backing off %s for %v", providerID, d)
}
