package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxPerPage is the largest page size the Search API accepts.
	MaxPerPage = 100
)

// Client wraps the go-github client with quota tracking.
type Client struct {
	gh    *gh.Client
	quota *QuotaTracker
}

// NewClient creates a GitHub API client. An empty token selects
// unauthenticated access.
func NewClient(ctx context.Context, token string) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
		hc.Timeout = DefaultTimeout
	} else {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		gh:    gh.NewClient(hc),
		quota: NewQuotaTracker(),
	}
}

// NewClientWithHTTPClient creates a client against a custom API base URL.
// An empty baseURL keeps api.github.com.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base URL: %w", err)
		}
		client.BaseURL = u
	}
	return &Client{gh: client, quota: NewQuotaTracker()}, nil
}

// SearchRepositories runs one repository search sorted by stars.
func (c *Client) SearchRepositories(ctx context.Context, query string, perPage int) ([]*gh.Repository, error) {
	if err := c.quota.Check(); err != nil {
		return nil, err
	}
	if perPage <= 0 || perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	opts := &gh.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	result, resp, err := c.gh.Search.Repositories(ctx, query, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "search repositories")
	}
	if result == nil {
		return nil, nil
	}
	return result.Repositories, nil
}

func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp != nil && resp.Response != nil {
		c.quota.UpdateFromResponse(resp.Response)
		logger.Debug("GitHub search quota: %d remaining, resets %s",
			c.quota.Remaining(), c.quota.ResetTime().Format(time.RFC3339))
	}
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return c.quota.RateLimitError()
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return fmt.Errorf("%s: %w: %w", operation, domain.ErrProviderUnavailable, err)
}
