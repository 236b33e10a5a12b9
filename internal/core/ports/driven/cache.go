package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// ResultCache stores final discovery output keyed by a request fingerprint.
//
// Contract: an entry is visible to Get until its TTL elapses, after which Get
// reports a miss. Implementations may evict live entries early to respect a
// capacity bound; a miss is always safe because the caller recomputes.
type ResultCache interface {
	// Get returns the cached resources for key.
	// The boolean is false on a miss or an expired entry.
	Get(ctx context.Context, key string) ([]domain.Resource, bool, error)

	// Set stores resources under key for ttl.
	Set(ctx context.Context, key string, resources []domain.Resource, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
