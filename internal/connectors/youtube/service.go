package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// NewService creates a YouTube Data API service authenticated with an API key.
// Extra options are appended, which lets tests point the service at a fake
// endpoint.
func NewService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*yt.Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: youtube API key not configured", domain.ErrAuthInvalid)
	}
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := yt.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return svc, nil
}
