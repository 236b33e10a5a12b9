package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/skillscout/internal/adapters/driven/metrics"
	"github.com/custodia-labs/skillscout/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/skillscout/internal/adapters/driven/resilience"
	"github.com/custodia-labs/skillscout/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/skillscout/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/skillscout/internal/adapters/driving/cli"
	"github.com/custodia-labs/skillscout/internal/connectors"
	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
	"github.com/custodia-labs/skillscout/internal/core/services"
	"github.com/custodia-labs/skillscout/internal/logger"
)

// buildRuntime wires providers, breakers, the rate limiter, the cache and
// the metrics observer into a discovery service. An empty dataDir selects
// the default data directory for the SQLite cache.
func buildRuntime(ctx context.Context, settings *domain.DiscoverySettings, dataDir string) (*cli.Runtime, error) {
	providers, err := connectors.BuildProviders(ctx, settings.Providers)
	if err != nil {
		return nil, fmt.Errorf("building providers: %w", err)
	}

	observer := metrics.NewObserver()
	guarded := make([]driven.Provider, len(providers))
	for i, p := range providers {
		guarded[i] = resilience.Wrap(p, resilience.DefaultBreakerSettings(), observer)
	}

	discovery, err := services.NewDiscoveryService(guarded, *settings)
	if err != nil {
		return nil, fmt.Errorf("creating discovery service: %w", err)
	}
	discovery.SetRateLimiter(ratelimit.New(settings.Providers))
	discovery.SetObserver(observer)

	cache, closeCache, err := openCache(settings.Cache, dataDir)
	if err != nil {
		// A broken cache should never stop discovery.
		logger.Warn("Result cache disabled: %v", err)
	} else if cache != nil {
		discovery.SetCache(cache)
	}

	return &cli.Runtime{
		Discovery: discovery,
		Metrics:   observer.Handler(),
		Close:     closeCache,
	}, nil
}

// openCache opens the configured result cache. The returned close func is
// never nil.
func openCache(settings domain.CacheSettings, dataDir string) (driven.ResultCache, func() error, error) {
	noop := func() error { return nil }

	switch settings.Backend {
	case domain.CacheNone:
		return nil, noop, nil
	case domain.CacheSQLite:
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, noop, fmt.Errorf("opening sqlite cache: %w", err)
		}
		logger.Debug("Using sqlite result cache at %s", store.Path())
		return store, store.Close, nil
	default:
		return memory.NewResultCache(settings.MaxEntries), noop, nil
	}
}
