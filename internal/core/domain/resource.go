package domain

import (
	"net/url"
	"strings"
	"time"
)

// RawCandidate is a provider-native search hit before normalisation.
// Only Title and URL are required; every metric is optional.
type RawCandidate struct {
	Title       string
	URL         string
	Author      string
	Description string
	Thumbnail   string

	// Views, Likes and Comments are popularity metrics, when the provider has them.
	Views    *int64
	Likes    *int64
	Comments *int64

	// DurationSeconds is the running time for video content.
	DurationSeconds *int

	// PublishedAt is the publish or last-update date.
	PublishedAt *time.Time

	// Language is the content language code, if reported.
	Language string

	// Slug is the provider's stable short identifier (e.g. a course slug).
	Slug string

	// Type is the provider's content type (e.g. "video", "specialization").
	Type string
}

// Resource is the canonical, scored learning resource.
// It is created by a provider adapter, enriched by the scorers and read by
// the merge and rank engine. Nothing persists it.
type Resource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`

	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`

	Views    *int64 `json:"views,omitempty"`
	Likes    *int64 `json:"likes,omitempty"`
	Comments *int64 `json:"comments,omitempty"`

	// SourceProvider is the ID of the provider that produced this resource.
	SourceProvider string `json:"source_provider"`

	// Source is the display label (e.g. "YouTube").
	Source string `json:"source"`

	IsTutorial      bool `json:"is_tutorial"`
	IsComprehensive bool `json:"is_comprehensive"`
	IsRecent        bool `json:"is_recent"`

	RelevanceScore float64 `json:"relevance_score"`
	QualityScore   float64 `json:"quality_score"`
	CompositeScore float64 `json:"composite_score"`

	// Presentation fields, filled after ranking.
	DurationText string `json:"duration_text,omitempty"`
	ViewsText    string `json:"views_text,omitempty"`
	QualityLabel string `json:"quality_label,omitempty"`
}

// AgeDays returns the resource age in days at now, and false when the
// resource has no publish date.
func (r *Resource) AgeDays(now time.Time) (float64, bool) {
	if r.PublishedAt == nil || r.PublishedAt.IsZero() {
		return 0, false
	}
	age := now.Sub(*r.PublishedAt).Hours() / 24
	if age < 0 {
		age = 0
	}
	return age, true
}

// Content-type indicator phrases, matched against lowercase title+description.
var (
	tutorialIndicators = []string{
		"tutorial", "learn", "course", "guide", "how to", "beginner", "crash course",
	}
	comprehensiveIndicators = []string{
		"complete", "comprehensive", "specialization", "certificate", "masterclass", "bootcamp",
	}
)

// RecentWindow is how recent a publish date must be to flag a resource recent.
const RecentWindow = 730 * 24 * time.Hour

// ContentFlags are the boolean content-type signals of a resource.
type ContentFlags struct {
	IsTutorial      bool
	IsComprehensive bool
	IsRecent        bool
}

// ClassifyContent computes content-type flags by literal phrase matching.
// A nil publish date never counts as recent.
func ClassifyContent(title, description string, publishedAt *time.Time, now time.Time) ContentFlags {
	text := strings.ToLower(title + " " + description)

	var flags ContentFlags
	for _, w := range tutorialIndicators {
		if strings.Contains(text, w) {
			flags.IsTutorial = true
			break
		}
	}
	for _, w := range comprehensiveIndicators {
		if strings.Contains(text, w) {
			flags.IsComprehensive = true
			break
		}
	}
	if publishedAt != nil && !publishedAt.IsZero() {
		flags.IsRecent = now.Sub(*publishedAt) <= RecentWindow
	}
	return flags
}

// NewResource builds a Resource from a raw candidate, normalising the URL and
// computing content flags. Returns false when title or URL is missing or the
// URL is unusable; such candidates are dropped silently.
func NewResource(raw RawCandidate, providerID, source string, now time.Time) (Resource, bool) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return Resource{}, false
	}
	normalized, ok := NormalizeURL(raw.URL)
	if !ok {
		return Resource{}, false
	}

	flags := ClassifyContent(title, raw.Description, raw.PublishedAt, now)
	return Resource{
		Title:           title,
		URL:             normalized,
		Author:          strings.TrimSpace(raw.Author),
		Description:     strings.TrimSpace(raw.Description),
		Thumbnail:       raw.Thumbnail,
		DurationSeconds: raw.DurationSeconds,
		PublishedAt:     raw.PublishedAt,
		Views:           raw.Views,
		Likes:           raw.Likes,
		Comments:        raw.Comments,
		SourceProvider:  providerID,
		Source:          source,
		IsTutorial:      flags.IsTutorial,
		IsComprehensive: flags.IsComprehensive,
		IsRecent:        flags.IsRecent,
	}, true
}

// trackingParams are query parameters that never change the target content.
var trackingParams = map[string]bool{
	"fbclid": true, "gclid": true, "dclid": true, "msclkid": true, "igshid": true,
	"mc_cid": true, "mc_eid": true, "ref": true, "ref_src": true, "si": true,
	"feature": true, "pp": true, "ab_channel": true,
}

// NormalizeURL canonicalises a resource URL for deduplication: https scheme,
// lowercase host without "www."/"m.", no default port, no fragment, no
// tracking parameters, sorted query and no trailing slash. youtu.be short links and YouTube
// watch URLs collapse to https://youtube.com/watch?v=ID.
// Returns false for empty, relative or non-HTTP URLs.
func NormalizeURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	if port := u.Port(); port != "" && !isDefaultPort(scheme, port) {
		host += ":" + port
	}

	query := u.Query()
	path := u.EscapedPath()

	switch host {
	case "youtu.be":
		id := strings.Trim(path, "/")
		if id == "" {
			return "", false
		}
		host, path = "youtube.com", "/watch"
		query = url.Values{"v": {id}}
	case "youtube.com":
		if path == "/watch" {
			query = url.Values{"v": {query.Get("v")}}
		}
	}

	for key := range query {
		if trackingParams[strings.ToLower(key)] || strings.HasPrefix(strings.ToLower(key), "utm_") {
			query.Del(key)
		}
	}

	path = strings.TrimRight(path, "/")

	out := "https://" + host + path
	if encoded := query.Encode(); encoded != "" {
		out += "?" + encoded
	}
	return out, true
}

func isDefaultPort(scheme, port string) bool {
	return (scheme == "http" && port == "80") || (scheme == "https" && port == "443")
}

// knownSources maps URL host suffixes to display labels.
var knownSources = []struct {
	suffix string
	label  string
}{
	{"youtube.com", "YouTube"},
	{"coursera.org", "Coursera"},
	{"github.com", "GitHub"},
	{"developer.mozilla.org", "MDN Web Docs"},
	{"udemy.com", "Udemy"},
	{"edx.org", "edX"},
	{"freecodecamp.org", "freeCodeCamp"},
	{"khanacademy.org", "Khan Academy"},
}

// InferSource derives a display label from a URL host. Unknown hosts are
// returned as-is; unparseable URLs yield "Web".
func InferSource(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "Web"
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, ks := range knownSources {
		if host == ks.suffix || strings.HasSuffix(host, "."+ks.suffix) {
			return ks.label
		}
	}
	return host
}
