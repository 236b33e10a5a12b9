// Package resilience wraps providers with a circuit breaker so a provider
// that keeps failing is skipped for a cool-down period instead of costing
// every discovery a full round of timeouts.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
	"github.com/custodia-labs/skillscout/internal/logger"
)

// Ensure BreakerProvider implements the interface.
var _ driven.Provider = (*BreakerProvider)(nil)

// BreakerSettings configure the per-provider circuit breaker.
type BreakerSettings struct {
	// MinRequests is the sample size before the failure ratio is considered.
	MinRequests uint32

	// FailureRatio trips the breaker once reached.
	FailureRatio float64

	// ConsecutiveFailures trips the breaker regardless of the ratio.
	ConsecutiveFailures uint32

	// Interval resets the counts while closed.
	Interval time.Duration

	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration

	// HalfOpenRequests is the number of trial requests allowed while half-open.
	HalfOpenRequests uint32
}

// DefaultBreakerSettings returns conservative breaker settings.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MinRequests:         5,
		FailureRatio:        0.6,
		ConsecutiveFailures: 3,
		Interval:            time.Minute,
		OpenTimeout:         2 * time.Minute,
		HalfOpenRequests:    1,
	}
}

// BreakerProvider decorates a provider with a circuit breaker around Search.
type BreakerProvider struct {
	driven.Provider
	cb *gobreaker.CircuitBreaker[[]domain.RawCandidate]
}

// Wrap returns provider guarded by a circuit breaker. The observer is
// optional (can be nil).
func Wrap(provider driven.Provider, settings BreakerSettings, observer driven.Observer) *BreakerProvider {
	id := provider.ID()

	cb := gobreaker.NewCircuitBreaker[[]domain.RawCandidate](gobreaker.Settings{
		Name:        id,
		MaxRequests: settings.HalfOpenRequests,
		Interval:    settings.Interval,
		Timeout:     settings.OpenTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if settings.ConsecutiveFailures > 0 && counts.ConsecutiveFailures >= settings.ConsecutiveFailures {
				return true
			}
			if counts.Requests < settings.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= settings.FailureRatio
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker %s: %s -> %s", name, stateName(from), stateName(to))
			if observer != nil {
				observer.BreakerStateChanged(name, stateName(from), stateName(to))
			}
		},

		// A discovery that was cancelled or ran out of time says nothing
		// about the provider's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errCallerGaveUp)
		},
	})

	return &BreakerProvider{Provider: provider, cb: cb}
}

// Search runs the wrapped search unless the breaker is open.
func (b *BreakerProvider) Search(ctx context.Context, query string) ([]domain.RawCandidate, error) {
	raws, err := b.cb.Execute(func() ([]domain.RawCandidate, error) {
		raws, err := b.Provider.Search(ctx, query)
		if err != nil && callerGaveUp(ctx) {
			err = fmt.Errorf("%w: %w", errCallerGaveUp, err)
		}
		return raws, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s circuit %v", domain.ErrProviderUnavailable, b.ID(), err)
	}
	return raws, err
}

// errCallerGaveUp marks failures caused by the caller's cancellation or
// deadline rather than by the provider.
var errCallerGaveUp = errors.New("caller gave up")

// callerGaveUp reports whether ctx ended for a reason other than the call's
// own timeout. Only an expired per-call timeout blames the provider.
func callerGaveUp(ctx context.Context) bool {
	if ctx.Err() == nil {
		return false
	}
	return !errors.Is(context.Cause(ctx), domain.ErrCallTimeout)
}

func (b *BreakerProvider) state() string {
	return stateName(b.cb.State())
}

func stateName(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
