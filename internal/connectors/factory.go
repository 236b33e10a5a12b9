package connectors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/skillscout/internal/connectors/coursera"
	"github.com/custodia-labs/skillscout/internal/connectors/github"
	"github.com/custodia-labs/skillscout/internal/connectors/httpjson"
	"github.com/custodia-labs/skillscout/internal/connectors/mdn"
	"github.com/custodia-labs/skillscout/internal/connectors/youtube"
	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
	"github.com/custodia-labs/skillscout/internal/logger"
)

// BuildProviders creates the enabled providers in settings order.
// Providers that cannot be built (YouTube without an API key) are skipped
// with a warning; an unknown provider ID is an error.
func BuildProviders(ctx context.Context, settings domain.ProviderSettings) ([]driven.Provider, error) {
	enabled := settings.Enabled
	if len(enabled) == 0 {
		enabled = domain.KnownProviders
	}

	shared := httpjson.New(nil)
	providers := make([]driven.Provider, 0, len(enabled))

	for _, id := range enabled {
		switch id {
		case domain.ProviderYouTube:
			svc, err := youtube.NewService(ctx, settings.YouTubeAPIKey)
			if err != nil {
				logger.Warn("Skipping youtube provider: %v", err)
				continue
			}
			providers = append(providers, youtube.New(svc, settings.MaxResults))
		case domain.ProviderCoursera:
			providers = append(providers, coursera.New(shared, "", settings.MaxResults))
		case domain.ProviderGitHub:
			if settings.GitHubToken == "" {
				logger.Debug("github provider running unauthenticated")
			}
			providers = append(providers, github.New(github.NewClient(ctx, settings.GitHubToken), settings.MaxResults))
		case domain.ProviderMDN:
			providers = append(providers, mdn.New(shared, "", settings.MaxResults))
		default:
			return nil, fmt.Errorf("%w: provider %q", domain.ErrUnsupportedType, id)
		}
	}

	logger.Debug("Built %d of %d enabled provider(s)", len(providers), len(enabled))
	return providers, nil
}
