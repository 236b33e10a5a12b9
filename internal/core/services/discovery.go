package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
	"github.com/custodia-labs/skillscout/internal/core/ports/driving"
	"github.com/custodia-labs/skillscout/internal/logger"
)

// Ensure DiscoveryService implements the interface.
var _ driving.DiscoveryService = (*DiscoveryService)(nil)

// Result origins reported to the observer.
const (
	originProviders = "providers"
	originFallback  = "fallback"
	originCache     = "cache"
	originNone      = "none"
)

// cancelGrace is how long the facade keeps collecting after the global
// deadline, giving interrupted cascades time to hand back partial results.
const cancelGrace = 100 * time.Millisecond

// DiscoveryService is the single entry point for resource discovery.
// It plans cascades, fans out to providers, merges, ranks and formats.
// Discover never returns an error: every failure degrades to fewer results.
type DiscoveryService struct {
	providers []driven.Provider
	planner   *QueryPlanner
	relevance *RelevanceScorer
	quality   *QualityScorer
	cascade   *CascadeController
	ranker    *MergeRanker
	cache     driven.ResultCache
	observer  driven.Observer
	settings  domain.DiscoverySettings
}

// NewDiscoveryService creates the discovery facade. Providers are ordered by
// settings.Providers.Enabled, which is also their ranking priority; providers
// not in the list are left out. An empty Enabled list keeps every provider in
// the given order. Nil or duplicate providers are rejected.
func NewDiscoveryService(
	providers []driven.Provider,
	settings domain.DiscoverySettings,
) (*DiscoveryService, error) {
	ordered, err := orderProviders(providers, settings.Providers.Enabled)
	if err != nil {
		return nil, err
	}

	planner, err := NewQueryPlanner(domain.SpecialCascades, settings.Cascade.MaxLength)
	if err != nil {
		return nil, fmt.Errorf("query planner: %w", err)
	}

	relevance := NewRelevanceScorer(settings.Relevance)
	quality := NewQualityScorer(settings.Quality, nil)

	return &DiscoveryService{
		providers: ordered,
		planner:   planner,
		relevance: relevance,
		quality:   quality,
		cascade:   NewCascadeController(relevance, quality, nil, nil, settings.Cascade),
		ranker:    NewMergeRanker(settings.Rank),
		settings:  settings,
	}, nil
}

// SetCache sets the result cache. Nil disables caching.
func (s *DiscoveryService) SetCache(cache driven.ResultCache) {
	s.cache = cache
}

// SetRateLimiter sets the per-provider rate limiter used by every cascade.
func (s *DiscoveryService) SetRateLimiter(limiter driven.RateLimiter) {
	s.cascade.limiter = limiter
}

// SetObserver sets the metrics observer.
func (s *DiscoveryService) SetObserver(observer driven.Observer) {
	s.observer = observer
	s.cascade.observer = observer
}

// SetClock replaces the clock used for recency scoring.
func (s *DiscoveryService) SetClock(now func() time.Time) {
	s.quality.now = now
}

// Providers returns the profiles of the active providers in priority order.
func (s *DiscoveryService) Providers() []domain.ProviderProfile {
	profiles := make([]domain.ProviderProfile, len(s.providers))
	for i, p := range s.providers {
		profiles[i] = p.Profile()
	}
	return profiles
}

// Discover finds, ranks and formats learning resources for a subject.
func (s *DiscoveryService) Discover(ctx context.Context, req domain.DiscoveryRequest) []domain.Resource {
	requestID := uuid.NewString()
	start := time.Now()
	logger.Section("Discovery")
	logger.Debug("[%s] subject=%q kind=%q limit=%d", requestID, req.Subject, req.Kind, req.Limit)

	subject, err := domain.NewSubjectQuery(req.Subject, req.Kind)
	if err != nil {
		logger.Warn("[%s] invalid subject %q: %v", requestID, req.Subject, err)
		s.finished(req.Kind, originNone, 0, start)
		return []domain.Resource{}
	}
	logger.Debug("[%s] keywords=%v compound=%t category=%q",
		requestID, subject.Keywords(), subject.IsCompound(), subject.DomainCategory())

	limit := s.settings.Rank.ClampLimit(req.Limit)
	key := s.cacheKey(subject, limit)

	if cached, ok := s.lookup(ctx, requestID, key); ok {
		s.finished(subject.Kind(), originCache, len(cached), start)
		return cached
	}

	timeout := s.settings.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultDiscoverySettings().Timeout
	}
	fanCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	plans := s.planner.Plan(subject, s.Providers())
	outcomes := s.fanOut(fanCtx, requestID, subject, plans)

	origin := originProviders
	results := s.ranker.Rank(outcomes, limit)
	if len(results) == 0 {
		results = s.fallback(subject, limit)
		origin = originFallback
		if len(results) == 0 {
			origin = originNone
		}
		logger.Info("[%s] providers returned nothing, %d curated result(s)", requestID, len(results))
	}

	Present(results, s.settings.Labels)

	if len(results) > 0 {
		s.store(ctx, requestID, key, results)
	}

	logger.Info("[%s] %d result(s) for %q in %v", requestID, len(results), subject.Text(), time.Since(start))
	s.finished(subject.Kind(), origin, len(results), start)

	if results == nil {
		return []domain.Resource{}
	}
	return results
}

// indexedOutcome carries a cascade outcome back to its provider slot.
type indexedOutcome struct {
	index   int
	outcome domain.CascadeOutcome
}

// fanOut runs one cascade per provider concurrently and collects the
// outcomes in provider priority order. Slots whose cascade did not report
// back before the deadline stay empty.
func (s *DiscoveryService) fanOut(
	ctx context.Context,
	requestID string,
	subject domain.SubjectQuery,
	plans map[string]domain.QueryCascade,
) []domain.CascadeOutcome {
	outcomes := make([]domain.CascadeOutcome, len(s.providers))
	for i, p := range s.providers {
		outcomes[i] = domain.CascadeOutcome{Provider: p.Profile(), State: domain.CascadeTimedOut}
	}

	results := make(chan indexedOutcome, len(s.providers))
	g, gctx := errgroup.WithContext(ctx)

	for i, p := range s.providers {
		g.Go(func() error {
			results <- indexedOutcome{index: i, outcome: s.runProvider(gctx, requestID, p, subject, plans[p.ID()])}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	done := ctx.Done()
	var grace <-chan time.Time
	for {
		select {
		case r, ok := <-results:
			if !ok {
				return outcomes
			}
			outcomes[r.index] = r.outcome
		case <-done:
			logger.Warn("[%s] discovery deadline reached, collecting partial results", requestID)
			done = nil
			grace = time.After(cancelGrace)
		case <-grace:
			logger.Warn("[%s] abandoning providers that did not report back", requestID)
			return outcomes
		}
	}
}

// runProvider runs one cascade, converting a crash into a failed outcome.
func (s *DiscoveryService) runProvider(
	ctx context.Context,
	requestID string,
	p driven.Provider,
	subject domain.SubjectQuery,
	cascade domain.QueryCascade,
) (outcome domain.CascadeOutcome) {
	profile := p.Profile()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[%s] provider %s crashed: %v", requestID, profile.ID, r)
			outcome = domain.CascadeOutcome{Provider: profile, State: domain.CascadeFailed}
		}
	}()

	if len(cascade) == 0 {
		return domain.CascadeOutcome{Provider: profile, State: domain.CascadeExhausted}
	}
	logger.Debug("[%s] %s cascade: %v", requestID, profile.ID, []string(cascade))
	return s.cascade.Run(ctx, p, subject, cascade)
}

// fallback scores the curated resources for a subject like provider results.
func (s *DiscoveryService) fallback(subject domain.SubjectQuery, limit int) []domain.Resource {
	curated := CuratedFallback(subject)
	if len(curated) == 0 {
		return nil
	}

	eligible := curated[:0]
	for _, res := range curated {
		res.RelevanceScore = s.relevance.Score(&res, subject)
		if res.RelevanceScore <= 0 {
			continue
		}
		res.QualityScore = s.quality.Baseline()
		eligible = append(eligible, res)
	}

	outcome := domain.CascadeOutcome{
		Provider:  domain.ProviderProfile{ID: curatedProviderID},
		State:     domain.CascadeSufficient,
		Resources: eligible,
	}
	return s.ranker.Rank([]domain.CascadeOutcome{outcome}, limit)
}

func (s *DiscoveryService) cacheKey(subject domain.SubjectQuery, limit int) string {
	ids := make([]string, len(s.providers))
	for i, p := range s.providers {
		ids[i] = p.ID()
	}
	return strings.Join([]string{
		string(subject.Kind()),
		subject.Text(),
		strconv.Itoa(limit),
		strings.Join(ids, ","),
	}, "|")
}

func (s *DiscoveryService) lookup(ctx context.Context, requestID, key string) ([]domain.Resource, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("[%s] cache lookup failed: %v", requestID, err)
		return nil, false
	}
	if ok {
		logger.Info("[%s] cache hit (%d results)", requestID, len(cached))
	}
	return cached, ok
}

func (s *DiscoveryService) store(ctx context.Context, requestID, key string, results []domain.Resource) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, results, s.settings.Cache.TTL); err != nil {
		logger.Warn("[%s] cache store failed: %v", requestID, err)
	}
}

func (s *DiscoveryService) finished(kind domain.SubjectKind, origin string, n int, start time.Time) {
	if s.observer == nil {
		return
	}
	if kind == "" {
		kind = domain.SubjectSkill
	}
	s.observer.DiscoveryFinished(string(kind), origin, n, time.Since(start))
}

// orderProviders arranges providers by the enabled list.
func orderProviders(providers []driven.Provider, enabled []string) ([]driven.Provider, error) {
	byID := make(map[string]driven.Provider, len(providers))
	var inOrder []driven.Provider
	for i, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("%w: provider %d is nil", domain.ErrInvalidInput, i)
		}
		if _, dup := byID[p.ID()]; dup {
			return nil, fmt.Errorf("%w: duplicate provider %q", domain.ErrInvalidInput, p.ID())
		}
		byID[p.ID()] = p
		inOrder = append(inOrder, p)
	}

	if len(enabled) == 0 {
		return inOrder, nil
	}

	ordered := make([]driven.Provider, 0, len(enabled))
	for _, id := range enabled {
		p, ok := byID[id]
		if !ok {
			logger.Debug("Provider %s enabled but not available", id)
			continue
		}
		ordered = append(ordered, p)
	}
	if len(ordered) == 0 && len(providers) > 0 {
		return nil, errors.New("no enabled provider is available")
	}
	return ordered, nil
}
