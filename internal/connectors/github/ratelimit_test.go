package github

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

func responseWithHeaders(headers map[string]string) *http.Response {
	resp := &http.Response{Header: make(http.Header)}
	for k, v := range headers {
		resp.Header.Set(k, v)
	}
	return resp
}

func TestQuotaTracker(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("starts with full quota", func(t *testing.T) {
		q := NewQuotaTracker()
		assert.Equal(t, SearchRateLimit, q.Remaining())
		assert.NoError(t, q.Check())
	})

	t.Run("reads rate limit headers", func(t *testing.T) {
		q := NewQuotaTracker()
		reset := now.Add(time.Minute)
		q.UpdateFromResponse(responseWithHeaders(map[string]string{
			HeaderRateLimit:     "10",
			HeaderRateRemaining: "4",
			HeaderRateReset:     strconv.FormatInt(reset.Unix(), 10),
		}))

		assert.Equal(t, 4, q.Remaining())
		assert.True(t, q.ResetTime().Equal(reset))
	})

	t.Run("ignores malformed headers", func(t *testing.T) {
		q := NewQuotaTracker()
		q.UpdateFromResponse(responseWithHeaders(map[string]string{
			HeaderRateRemaining: "many",
		}))
		assert.Equal(t, SearchRateLimit, q.Remaining())
	})

	t.Run("nil response is ignored", func(t *testing.T) {
		q := NewQuotaTracker()
		q.UpdateFromResponse(nil)
		assert.Equal(t, SearchRateLimit, q.Remaining())
	})

	t.Run("spent quota blocks until reset", func(t *testing.T) {
		q := NewQuotaTracker()
		q.now = func() time.Time { return now }
		q.UpdateFromResponse(responseWithHeaders(map[string]string{
			HeaderRateRemaining: "0",
			HeaderRateReset:     strconv.FormatInt(now.Add(30*time.Second).Unix(), 10),
		}))

		err := q.Check()
		require.Error(t, err)
		var rlErr *RateLimitError
		require.True(t, errors.As(err, &rlErr))
		assert.True(t, rlErr.ResetAt.Equal(now.Add(30*time.Second)))
		assert.True(t, errors.Is(err, domain.ErrRateLimited))

		q.now = func() time.Time { return now.Add(31 * time.Second) }
		assert.NoError(t, q.Check())
	})

	t.Run("retry-after spends the quota", func(t *testing.T) {
		q := NewQuotaTracker()
		q.now = func() time.Time { return now }
		q.UpdateFromResponse(responseWithHeaders(map[string]string{
			HeaderRetryAfter: "60",
		}))

		require.Error(t, q.Check())
		assert.True(t, q.ResetTime().Equal(now.Add(time.Minute)))
	})
}

func TestRateLimitError_RetryDelay(t *testing.T) {
	err := &RateLimitError{ResetAt: time.Now().Add(time.Hour)}
	assert.InDelta(t, time.Hour.Seconds(), err.RetryDelay().Seconds(), 5)

	wrapped := fmt.Errorf("search repositories: %w", err)
	assert.InDelta(t, time.Hour.Seconds(), domain.RetryDelay(wrapped).Seconds(), 5)

	assert.Zero(t, (&RateLimitError{}).RetryDelay(), "unknown reset time")
	assert.Zero(t, (&RateLimitError{ResetAt: time.Now().Add(-time.Minute)}).RetryDelay(), "reset already passed")
}

func TestAPIError_Unwrap(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrAuthInvalid},
		{http.StatusTooManyRequests, domain.ErrRateLimited},
		{http.StatusUnprocessableEntity, domain.ErrInvalidInput},
		{http.StatusInternalServerError, domain.ErrProviderUnavailable},
		{http.StatusForbidden, domain.ErrProviderUnavailable},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			err := &APIError{StatusCode: tt.status, Message: "x"}
			assert.True(t, errors.Is(err, tt.want))
			assert.Contains(t, err.Error(), strconv.Itoa(tt.status))
		})
	}
}
