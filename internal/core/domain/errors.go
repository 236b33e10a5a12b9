package domain

import (
	"errors"
	"time"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider, kind or backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidCascadeTable indicates a misconfigured special-case query table.
	// This is a programming error and is reported at construction time.
	ErrInvalidCascadeTable = errors.New("invalid special cascade table")

	// Provider Errors.
	//
	// Adapters wrap upstream failures in one of these so the cascade
	// controller can classify them. None of them reach the caller of
	// the discovery service.

	// ErrAuthInvalid indicates the provider rejected the configured credentials.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrQuotaExceeded indicates the provider's daily quota is spent.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrProviderUnavailable indicates the provider could not be reached
	// or its circuit breaker is open.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrEmptyPayload indicates the provider answered without a usable body.
	ErrEmptyPayload = errors.New("empty upstream payload")

	// ErrCallTimeout is the cancellation cause of a single provider call
	// that outran its own timeout, as opposed to the whole discovery
	// running out of time.
	ErrCallTimeout = errors.New("provider call timed out")
)

// RetryHinter is implemented by provider errors that carry the upstream's
// own idea of when calls may resume (Retry-After, quota reset time).
type RetryHinter interface {
	RetryDelay() time.Duration
}

// RetryDelay returns the wait hinted anywhere in err's chain, or zero when
// there is none.
func RetryDelay(err error) time.Duration {
	var hinter RetryHinter
	if errors.As(err, &hinter) {
		if d := hinter.RetryDelay(); d > 0 {
			return d
		}
	}
	return 0
}
