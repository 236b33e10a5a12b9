package github

import (
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// Ensure RateLimitError carries its reset time as a retry hint.
var _ domain.RetryHinter = (*RateLimitError)(nil)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap lets errors.Is match domain.ErrRateLimited.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// RetryDelay is the time left until the quota resets.
func (e *RateLimitError) RetryDelay() time.Duration {
	if e.ResetAt.IsZero() {
		return 0
	}
	if d := time.Until(e.ResetAt); d > 0 {
		return d
	}
	return 0
}

// APIError represents a GitHub API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap maps the status code onto a domain sentinel.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrAuthInvalid
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	default:
		return domain.ErrProviderUnavailable
	}
}
