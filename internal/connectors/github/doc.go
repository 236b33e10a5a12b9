// Package github implements a learning-resource provider backed by GitHub
// repository search.
//
// Repositories are searched with the Search API and sorted by stars, so
// curated lists, roadmaps and tutorial collections surface first. Archived
// repositories are excluded with the archived:false qualifier.
//
// # Authentication
//
// A token is optional. Without one, search runs unauthenticated with a
// lower quota (10 requests per minute instead of 30). A personal access
// token with no scopes is enough for public search.
//
// # Rate Limiting
//
// Proactive throttling is done by the shared per-provider limiter in the
// discovery service. This package only tracks the quota reported by the
// X-RateLimit-* headers: once the remaining quota is spent, calls fail fast
// with a [RateLimitError] until the reset time instead of hitting the API.
//
// # Errors
//
// Upstream failures are returned as [APIError] or [RateLimitError]. Both
// unwrap to a domain sentinel ([domain.ErrAuthInvalid],
// [domain.ErrRateLimited], [domain.ErrProviderUnavailable]) so the cascade
// controller can classify them.
//
// # Metrics
//
// GitHub stars are not comparable to video views, so the provider reports
// no popularity metrics. Its results rank on relevance alone.
package github
