package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// Error reasons reported in googleapi.Error items.
const (
	reasonQuotaExceeded     = "quotaExceeded"
	reasonDailyLimit        = "dailyLimitExceeded"
	reasonRateLimitExceeded = "rateLimitExceeded"
	reasonUserRateLimit     = "userRateLimitExceeded"
	reasonKeyInvalid        = "keyInvalid"
)

// IsQuotaExceeded returns true if the error indicates a spent daily quota.
func IsQuotaExceeded(err error) bool {
	if errors.Is(err, domain.ErrQuotaExceeded) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusForbidden && hasReason(gerr, reasonQuotaExceeded, reasonDailyLimit)
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, domain.ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests ||
			hasReason(gerr, reasonRateLimitExceeded, reasonUserRateLimit)
	}
	return false
}

// IsUnauthorized returns true if the error indicates a rejected API key.
func IsUnauthorized(err error) bool {
	if errors.Is(err, domain.ErrAuthInvalid) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized || hasReason(gerr, reasonKeyInvalid)
	}
	return false
}

// WrapError classifies a YouTube API error into a domain sentinel.
// The original error stays in the chain.
func WrapError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("youtube: %s: %w", operation, err)
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("youtube: %s: %w: %w", operation, domain.ErrProviderUnavailable, err)
	}

	var sentinel error
	switch {
	case IsQuotaExceeded(gerr):
		sentinel = domain.ErrQuotaExceeded
	case IsRateLimited(gerr):
		sentinel = domain.ErrRateLimited
	case IsUnauthorized(gerr), gerr.Code == http.StatusForbidden:
		sentinel = domain.ErrAuthInvalid
	default:
		sentinel = domain.ErrProviderUnavailable
	}
	return fmt.Errorf("youtube: %s: %w: %w", operation, sentinel, err)
}

func hasReason(gerr *googleapi.Error, reasons ...string) bool {
	for _, item := range gerr.Errors {
		for _, r := range reasons {
			if item.Reason == r {
				return true
			}
		}
	}
	return false
}
