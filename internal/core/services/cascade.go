package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
	"github.com/custodia-labs/skillscout/internal/logger"
)

// Provider call outcomes reported to the observer.
const (
	callOK      = "ok"
	callEmpty   = "empty"
	callError   = "error"
	callTimeout = "timeout"
	callPanic   = "panic"
)

// CascadeController drives one provider through its query cascade,
// stopping as soon as enough relevant candidates have been collected.
type CascadeController struct {
	relevance *RelevanceScorer
	quality   *QualityScorer
	limiter   driven.RateLimiter
	observer  driven.Observer
	settings  domain.CascadeSettings
}

// NewCascadeController creates a controller.
// The limiter and observer are optional (can be nil).
func NewCascadeController(
	relevance *RelevanceScorer,
	quality *QualityScorer,
	limiter driven.RateLimiter,
	observer driven.Observer,
	settings domain.CascadeSettings,
) *CascadeController {
	return &CascadeController{
		relevance: relevance,
		quality:   quality,
		limiter:   limiter,
		observer:  observer,
		settings:  settings,
	}
}

// Run executes the cascade for one provider. Attempts run strictly in order;
// attempt i+1 starts only after attempt i came back insufficient. Errors from
// the provider are logged and count as an empty attempt. When the cascade
// deadline expires, whatever was collected so far is returned.
func (c *CascadeController) Run(
	ctx context.Context,
	provider driven.Provider,
	subject domain.SubjectQuery,
	cascade domain.QueryCascade,
) domain.CascadeOutcome {
	profile := provider.Profile()
	outcome := domain.CascadeOutcome{
		Provider: profile,
		State:    domain.CascadeExhausted,
	}

	if c.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.settings.Timeout)
		defer cancel()
	}

	acc := newAccumulator()

	for i, query := range cascade {
		if ctx.Err() != nil {
			outcome.State = domain.CascadeTimedOut
			break
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx, profile.ID); err != nil {
				logger.Debug("Cascade %s: rate limiter wait aborted: %v", profile.ID, err)
				outcome.State = domain.CascadeTimedOut
				break
			}
		}

		outcome.Attempts++
		outcome.Queries = append(outcome.Queries, query)
		logger.Debug("Cascade %s: attempt %d/%d query=%q", profile.ID, i+1, len(cascade), query)

		raws, err := c.search(ctx, provider, query)
		if err != nil {
			logger.Warn("Cascade %s: query %q failed: %v", profile.ID, query, err)
			if isQuotaError(err) {
				if c.limiter != nil {
					c.limiter.Backoff(profile.ID, domain.RetryDelay(err))
				}
				// Further attempts against a throttled or unauthorised
				// provider cannot succeed.
				break
			}
		}

		added := c.absorb(acc, provider, profile, subject, raws)
		logger.Debug("Cascade %s: %d raw, %d new relevant, %d total",
			profile.ID, len(raws), added, acc.len())

		if acc.len() >= c.settings.SufficientCandidates {
			outcome.State = domain.CascadeSufficient
			break
		}
		if i == len(cascade)-1 {
			if acc.len() > 0 {
				outcome.State = domain.CascadeSufficient
			}
			break
		}
		if ctx.Err() != nil {
			outcome.State = domain.CascadeTimedOut
			break
		}
	}

	outcome.Resources = acc.resources()
	logger.Info("Cascade %s: %s after %d attempt(s), %d resource(s)",
		profile.ID, outcome.State, outcome.Attempts, len(outcome.Resources))

	if c.observer != nil {
		c.observer.CascadeFinished(profile.ID, string(outcome.State), outcome.Attempts)
	}
	return outcome
}

// search performs one provider call under the per-call timeout. A panic in
// the adapter is converted into an error so one broken provider cannot take
// the discovery down.
func (c *CascadeController) search(
	ctx context.Context, provider driven.Provider, query string,
) (raws []domain.RawCandidate, err error) {
	callCtx := ctx
	if c.settings.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeoutCause(ctx, c.settings.CallTimeout, domain.ErrCallTimeout)
		defer cancel()
	}

	id := provider.ID()
	start := time.Now()
	outcome := callOK

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Provider %s panicked on %q: %v", id, query, r)
			raws = nil
			err = fmt.Errorf("%w: %s panicked: %v", domain.ErrProviderUnavailable, id, r)
			outcome = callPanic
		}
		if c.observer != nil {
			c.observer.ProviderCall(id, outcome, time.Since(start))
		}
	}()

	raws, err = provider.Search(callCtx, query)
	switch {
	case err != nil && callCtx.Err() != nil:
		outcome = callTimeout
		return nil, fmt.Errorf("%s search: %w", id, errors.Join(err, callCtx.Err()))
	case err != nil:
		outcome = callError
		return nil, err
	case len(raws) == 0:
		outcome = callEmpty
	}
	return raws, nil
}

// absorb normalises, filters and scores raw candidates into acc.
// Returns the number of newly added resources.
func (c *CascadeController) absorb(
	acc *accumulator,
	provider driven.Provider,
	profile domain.ProviderProfile,
	subject domain.SubjectQuery,
	raws []domain.RawCandidate,
) int {
	added := 0
	for _, raw := range raws {
		res, ok := provider.Normalize(raw)
		if !ok {
			continue
		}

		rel := c.relevance.Score(&res, subject)
		if rel <= 0 {
			continue
		}
		res.RelevanceScore = rel

		if profile.HasMetrics {
			res.QualityScore = c.quality.Score(&res)
		} else {
			res.QualityScore = c.quality.Baseline()
		}
		if res.SourceProvider == "" {
			res.SourceProvider = profile.ID
		}
		if res.Source == "" {
			res.Source = profile.Name
		}

		if acc.add(res) {
			added++
		}
	}
	return added
}

func isQuotaError(err error) bool {
	return errors.Is(err, domain.ErrRateLimited) ||
		errors.Is(err, domain.ErrQuotaExceeded) ||
		errors.Is(err, domain.ErrAuthInvalid)
}

// accumulator collects resources across attempts, one per URL.
type accumulator struct {
	items []domain.Resource
	index map[string]int
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[string]int)}
}

// add inserts r, or replaces an existing entry with the same URL when r is
// more relevant. Reports whether r was new.
func (a *accumulator) add(r domain.Resource) bool {
	if i, ok := a.index[r.URL]; ok {
		if r.RelevanceScore > a.items[i].RelevanceScore {
			a.items[i] = r
		}
		return false
	}
	a.index[r.URL] = len(a.items)
	a.items = append(a.items, r)
	return true
}

func (a *accumulator) len() int {
	return len(a.items)
}

func (a *accumulator) resources() []domain.Resource {
	out := make([]domain.Resource, len(a.items))
	copy(out, a.items)
	return out
}
