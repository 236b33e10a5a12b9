package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
)

// --- Mock implementations ---

// testNow is the fixed clock used by scorers and mock providers.
var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// mockProvider implements driven.Provider for testing.
// searchFn decides what each call returns; queries records every call.
type mockProvider struct {
	profile  domain.ProviderProfile
	searchFn func(ctx context.Context, query string) ([]domain.RawCandidate, error)

	mu      sync.Mutex
	queries []string
}

func newMockProvider(id string, hasMetrics bool) *mockProvider {
	return &mockProvider{
		profile: domain.ProviderProfile{
			ID:         id,
			Name:       "Mock " + id,
			Style:      domain.QueryStyleVideo,
			HasMetrics: hasMetrics,
		},
	}
}

// returning makes every call return the same candidates.
func (m *mockProvider) returning(raws ...domain.RawCandidate) *mockProvider {
	m.searchFn = func(context.Context, string) ([]domain.RawCandidate, error) {
		return raws, nil
	}
	return m
}

// failing makes every call return err.
func (m *mockProvider) failing(err error) *mockProvider {
	m.searchFn = func(context.Context, string) ([]domain.RawCandidate, error) {
		return nil, err
	}
	return m
}

// perQuery returns responses[i] on the i-th call and nothing afterwards.
func (m *mockProvider) perQuery(responses ...[]domain.RawCandidate) *mockProvider {
	m.searchFn = func(context.Context, string) ([]domain.RawCandidate, error) {
		n := m.callCount() - 1
		if n < len(responses) {
			return responses[n], nil
		}
		return nil, nil
	}
	return m
}

func (m *mockProvider) ID() string {
	return m.profile.ID
}

func (m *mockProvider) Profile() domain.ProviderProfile {
	return m.profile
}

func (m *mockProvider) Search(ctx context.Context, query string) ([]domain.RawCandidate, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, query)
}

func (m *mockProvider) Normalize(raw domain.RawCandidate) (domain.Resource, bool) {
	return domain.NewResource(raw, m.profile.ID, m.profile.Name, testNow)
}

func (m *mockProvider) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

// mockLimiter implements driven.RateLimiter for testing.
type mockLimiter struct {
	mu       sync.Mutex
	waits    map[string]int
	backoffs []string
	delays   []time.Duration
	waitErr  error
}

func newMockLimiter() *mockLimiter {
	return &mockLimiter{waits: make(map[string]int)}
}

func (l *mockLimiter) Wait(_ context.Context, providerID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.waits[providerID]++
	return l.waitErr
}

func (l *mockLimiter) Backoff(providerID string, d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.backoffs = append(l.backoffs, providerID)
	l.delays = append(l.delays, d)
}

// throttledError is a quota error that knows when the provider recovers.
type throttledError struct {
	after time.Duration
}

func (e *throttledError) Error() string { return fmt.Sprintf("throttled for %v", e.after) }
func (e *throttledError) Unwrap() error { return domain.ErrRateLimited }
func (e *throttledError) RetryDelay() time.Duration {
	return e.after
}

// mockObserver implements driven.Observer for testing.
type mockObserver struct {
	mu          sync.Mutex
	calls       []string
	cascades    []string
	discoveries []string
}

func (o *mockObserver) ProviderCall(providerID, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, providerID+":"+outcome)
}

func (o *mockObserver) CascadeFinished(providerID, state string, attempts int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cascades = append(o.cascades, fmt.Sprintf("%s:%s:%d", providerID, state, attempts))
}

func (o *mockObserver) DiscoveryFinished(kind, origin string, results int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.discoveries = append(o.discoveries, fmt.Sprintf("%s:%s:%d", kind, origin, results))
}

func (o *mockObserver) BreakerStateChanged(string, string, string) {}

var (
	_ driven.Provider    = (*mockProvider)(nil)
	_ driven.RateLimiter = (*mockLimiter)(nil)
	_ driven.Observer    = (*mockObserver)(nil)
)

// candidate builds a raw candidate with a URL derived from the title.
func candidate(title, description string) domain.RawCandidate {
	return domain.RawCandidate{
		Title:       title,
		URL:         "https://example.com/" + slugify(title),
		Description: description,
	}
}

// withMetrics attaches popularity metrics to a candidate.
func withMetrics(raw domain.RawCandidate, views, likes, comments int64, published time.Time) domain.RawCandidate {
	raw.Views = &views
	raw.Likes = &likes
	raw.Comments = &comments
	raw.PublishedAt = &published
	return raw
}

func slugify(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}

func mustSubject(raw string, kind domain.SubjectKind) domain.SubjectQuery {
	q, err := domain.NewSubjectQuery(raw, kind)
	if err != nil {
		panic(err)
	}
	return q
}
