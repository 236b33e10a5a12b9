package github

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

const (
	// SearchRateLimit is the authenticated search limit (30/minute).
	SearchRateLimit = 30

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// QuotaTracker follows the search quota reported by GitHub response headers.
// It never sleeps: when the quota is spent, Check returns a RateLimitError
// until the reset time so the caller can move on to another provider.
type QuotaTracker struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetTime time.Time
	now       func() time.Time
}

// NewQuotaTracker creates a tracker that assumes a full quota until the
// first response says otherwise.
func NewQuotaTracker() *QuotaTracker {
	return &QuotaTracker{
		remaining: SearchRateLimit,
		limit:     SearchRateLimit,
		now:       time.Now,
	}
}

// Check returns a RateLimitError while the quota is spent.
func (q *QuotaTracker) Check() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.remaining > 0 || !q.now().Before(q.resetTime) {
		return nil
	}
	return &RateLimitError{
		ResetAt:   q.resetTime,
		Remaining: q.remaining,
		Limit:     q.limit,
	}
}

// UpdateFromResponse updates quota state from response headers.
func (q *QuotaTracker) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			q.remaining = val
		}
	}

	if limit := resp.Header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			q.limit = val
		}
	}

	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			q.resetTime = time.Unix(val, 0)
		}
	}

	// Secondary limits send Retry-After without touching the primary headers.
	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			q.remaining = 0
			q.resetTime = q.now().Add(time.Duration(seconds) * time.Second)
		}
	}
}

// RateLimitError builds an error describing the current quota state.
func (q *QuotaTracker) RateLimitError() *RateLimitError {
	q.mu.Lock()
	defer q.mu.Unlock()
	return &RateLimitError{
		ResetAt:   q.resetTime,
		Remaining: q.remaining,
		Limit:     q.limit,
	}
}

// Remaining returns the current remaining requests.
func (q *QuotaTracker) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.remaining
}

// ResetTime returns the quota reset time.
func (q *QuotaTracker) ResetTime() time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.resetTime
}
