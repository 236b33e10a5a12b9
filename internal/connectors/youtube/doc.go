// Package youtube implements a learning-resource provider backed by the
// YouTube Data API v3.
//
// Each search is two API calls: search.list finds video IDs for the query
// (type=video, relevanceLanguage=en) and videos.list fetches statistics and
// content details for those IDs. The second call supplies the popularity
// metrics (views, likes, comments) and the running time that the quality
// scorer uses, so this is the only built-in provider that reports metrics.
//
// # Authentication
//
// An API key is required. Requests are authenticated with
// [option.WithAPIKey]; the provider is not built when no key is configured.
//
// # Quota
//
// search.list costs 100 units and videos.list 1 unit of the default 10,000
// daily quota. Quota and rate-limit replies are classified into
// [domain.ErrQuotaExceeded] and [domain.ErrRateLimited] so the cascade stops
// early and the shared limiter backs off.
package youtube
