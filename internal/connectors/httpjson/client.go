// Package httpjson is the small HTTP client shared by providers that talk to
// plain JSON endpoints (Coursera, MDN). It classifies HTTP failures into
// domain sentinels so every provider reports errors the same way.
package httpjson

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// maxBodyBytes caps how much of a response body is decoded.
	maxBodyBytes = 4 << 20

	userAgent = "skillscout (+https://github.com/custodia-labs/skillscout)"
)

// Ensure StatusError carries its retry hint.
var _ domain.RetryHinter = (*StatusError)(nil)

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string

	// RetryAfter is the server's Retry-After hint, zero when absent.
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d from %s", e.StatusCode, e.URL)
}

// RetryDelay exposes the Retry-After hint to the cascade controller.
func (e *StatusError) RetryDelay() time.Duration {
	return e.RetryAfter
}

// Unwrap maps the status code onto a domain sentinel.
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return domain.ErrAuthInvalid
	case e.StatusCode == http.StatusBadRequest:
		return domain.ErrInvalidInput
	default:
		return domain.ErrProviderUnavailable
	}
}

// Client fetches and decodes JSON documents.
type Client struct {
	http *http.Client
}

// New creates a client. A nil httpClient gets a default with DefaultTimeout.
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{http: httpClient}
}

// Get issues a GET request and decodes the JSON body into out.
// An empty body is reported as domain.ErrEmptyPayload.
func (c *Client) Get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("fetch: %w", err)
		}
		return fmt.Errorf("fetch: %w: %w", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &StatusError{
			StatusCode: resp.StatusCode,
			URL:        rawURL,
			RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w: %w", domain.ErrProviderUnavailable, err)
	}
	if len(body) == 0 {
		return fmt.Errorf("%s: %w", rawURL, domain.ErrEmptyPayload)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w: %w", rawURL, domain.ErrEmptyPayload, err)
	}
	return nil
}

func retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
