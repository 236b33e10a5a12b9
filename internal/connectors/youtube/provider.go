package youtube

import (
	"context"
	"strings"
	"time"

	yt "google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
	"github.com/custodia-labs/skillscout/internal/logger"
	"github.com/custodia-labs/skillscout/internal/normalisers/html"
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

const (
	// DisplayName is the source label for YouTube results.
	DisplayName = "YouTube"

	// MaxResults is the largest page size search.list accepts.
	MaxResults = 50

	watchURL = "https://www.youtube.com/watch?v="

	typeVideo = "video"
)

// Provider searches YouTube videos.
type Provider struct {
	svc        *yt.Service
	maxResults int64
	now        func() time.Time
}

// New creates a YouTube provider. maxResults is the page size per search.
func New(svc *yt.Service, maxResults int) *Provider {
	if maxResults <= 0 || maxResults > MaxResults {
		maxResults = MaxResults
	}
	return &Provider{
		svc:        svc,
		maxResults: int64(maxResults),
		now:        time.Now,
	}
}

// ID returns the provider identifier.
func (p *Provider) ID() string {
	return domain.ProviderYouTube
}

// Profile describes the provider.
func (p *Provider) Profile() domain.ProviderProfile {
	return domain.ProviderProfile{
		ID:         domain.ProviderYouTube,
		Name:       DisplayName,
		Style:      domain.QueryStyleVideo,
		HasMetrics: true,
	}
}

// Search finds videos for the query and enriches them with statistics.
// When the statistics call fails for a reason other than quota, the
// search snippets are returned without metrics.
func (p *Provider) Search(ctx context.Context, query string) ([]domain.RawCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	resp, err := p.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type(typeVideo).
		RelevanceLanguage("en").
		MaxResults(p.maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, WrapError(err, "search.list")
	}

	var ids []string
	candidates := make(map[string]*domain.RawCandidate)
	for _, item := range resp.Items {
		if item == nil || item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		id := item.Id.VideoId
		if _, dup := candidates[id]; dup {
			continue
		}
		ids = append(ids, id)
		candidates[id] = fromSearchSnippet(id, item.Snippet)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if err := p.enrich(ctx, ids, candidates); err != nil {
		if IsQuotaExceeded(err) || IsRateLimited(err) {
			return nil, err
		}
		logger.Warn("youtube: videos.list failed, returning results without metrics: %v", err)
	}

	out := make([]domain.RawCandidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, *candidates[id])
	}
	return out, nil
}

// enrich fills statistics and content details from videos.list.
func (p *Provider) enrich(ctx context.Context, ids []string, candidates map[string]*domain.RawCandidate) error {
	resp, err := p.svc.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return WrapError(err, "videos.list")
	}

	for _, v := range resp.Items {
		if v == nil {
			continue
		}
		raw, ok := candidates[v.Id]
		if !ok {
			continue
		}
		if v.Snippet != nil {
			if v.Snippet.Description != "" {
				raw.Description = html.Summary(v.Snippet.Description, html.DescriptionLimit)
			}
			raw.Language = v.Snippet.DefaultAudioLanguage
		}
		if s := v.Statistics; s != nil {
			raw.Views = count(s.ViewCount)
			raw.Likes = count(s.LikeCount)
			raw.Comments = count(s.CommentCount)
		}
		if cd := v.ContentDetails; cd != nil && cd.Duration != "" {
			seconds, err := ParseDuration(cd.Duration)
			if err != nil {
				logger.Debug("youtube: video %s: %v", v.Id, err)
			} else if seconds > 0 {
				raw.DurationSeconds = &seconds
			}
		}
	}
	return nil
}

// Normalize maps a video candidate into a Resource.
func (p *Provider) Normalize(raw domain.RawCandidate) (domain.Resource, bool) {
	return domain.NewResource(raw, domain.ProviderYouTube, DisplayName, p.now())
}

func fromSearchSnippet(id string, s *yt.SearchResultSnippet) *domain.RawCandidate {
	raw := &domain.RawCandidate{
		Title:       html.Text(s.Title),
		URL:         watchURL + id,
		Author:      html.Text(s.ChannelTitle),
		Description: html.Summary(s.Description, html.DescriptionLimit),
		Thumbnail:   thumbnail(s.Thumbnails),
		Slug:        id,
		Type:        typeVideo,
	}
	if t, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
		raw.PublishedAt = &t
	}
	return raw
}

func thumbnail(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*yt.Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

func count(n uint64) *int64 {
	v := int64(n)
	return &v
}
