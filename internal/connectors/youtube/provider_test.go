package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

const searchBody = `{
  "items": [
    {
      "id": {"kind": "youtube#video", "videoId": "abc123"},
      "snippet": {
        "title": "Docker Tutorial for Beginners &amp; Pros",
        "description": "short",
        "channelTitle": "TechWorld with Nana",
        "publishedAt": "2023-05-01T12:00:00Z",
        "thumbnails": {"high": {"url": "https://i.ytimg.com/vi/abc123/hq.jpg"}}
      }
    },
    {
      "id": {"kind": "youtube#video", "videoId": "def456"},
      "snippet": {
        "title": "Docker Crash Course",
        "channelTitle": "Traversy Media",
        "publishedAt": "not-a-date"
      }
    },
    {
      "id": {"kind": "youtube#channel"},
      "snippet": {"title": "A channel"}
    }
  ]
}`

const videosBody = `{
  "items": [
    {
      "id": "abc123",
      "snippet": {"description": "Full docker course", "defaultAudioLanguage": "en"},
      "statistics": {"viewCount": "1500000", "likeCount": "45000", "commentCount": "1200"},
      "contentDetails": {"duration": "PT2H46M13S"}
    },
    {
      "id": "def456",
      "statistics": {"viewCount": "900"},
      "contentDetails": {"duration": "P0D"}
    }
  ]
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewService(context.Background(), "test-key",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return New(svc, 10)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestNewService_RequiresKey(t *testing.T) {
	_, err := NewService(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAuthInvalid))
}

func TestProvider_Profile(t *testing.T) {
	p := New(nil, 0)

	assert.Equal(t, domain.ProviderYouTube, p.ID())
	assert.Equal(t, int64(MaxResults), p.maxResults)
	profile := p.Profile()
	assert.Equal(t, "YouTube", profile.Name)
	assert.Equal(t, domain.QueryStyleVideo, profile.Style)
	assert.True(t, profile.HasMetrics)
}

func TestProvider_Search(t *testing.T) {
	t.Run("combines search and video statistics", func(t *testing.T) {
		var searchQuery, videoIDs, videoType string
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasSuffix(r.URL.Path, "/search"):
				searchQuery = r.URL.Query().Get("q")
				videoType = r.URL.Query().Get("type")
				writeJSON(w, http.StatusOK, searchBody)
			case strings.HasSuffix(r.URL.Path, "/videos"):
				videoIDs = r.URL.Query().Get("id")
				writeJSON(w, http.StatusOK, videosBody)
			default:
				http.NotFound(w, r)
			}
		})

		candidates, err := p.Search(context.Background(), "docker tutorial")
		require.NoError(t, err)

		assert.Equal(t, "docker tutorial", searchQuery)
		assert.Equal(t, "video", videoType)
		assert.Equal(t, "abc123,def456", videoIDs)
		require.Len(t, candidates, 2)

		first := candidates[0]
		assert.Equal(t, "Docker Tutorial for Beginners & Pros", first.Title)
		assert.Equal(t, "https://www.youtube.com/watch?v=abc123", first.URL)
		assert.Equal(t, "TechWorld with Nana", first.Author)
		assert.Equal(t, "Full docker course", first.Description)
		assert.Equal(t, "https://i.ytimg.com/vi/abc123/hq.jpg", first.Thumbnail)
		assert.Equal(t, "en", first.Language)
		require.NotNil(t, first.Views)
		assert.Equal(t, int64(1500000), *first.Views)
		require.NotNil(t, first.Likes)
		assert.Equal(t, int64(45000), *first.Likes)
		require.NotNil(t, first.Comments)
		assert.Equal(t, int64(1200), *first.Comments)
		require.NotNil(t, first.DurationSeconds)
		assert.Equal(t, 2*3600+46*60+13, *first.DurationSeconds)
		require.NotNil(t, first.PublishedAt)
		assert.Equal(t, 2023, first.PublishedAt.Year())

		second := candidates[1]
		assert.Nil(t, second.PublishedAt)
		assert.Nil(t, second.DurationSeconds, "live streams have no duration")
		require.NotNil(t, second.Views)
		assert.Equal(t, int64(900), *second.Views)
	})

	t.Run("statistics failure degrades to snippets", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/search") {
				writeJSON(w, http.StatusOK, searchBody)
				return
			}
			writeJSON(w, http.StatusNotFound, `{"error":{"code":404,"message":"gone"}}`)
		})

		candidates, err := p.Search(context.Background(), "docker")
		require.NoError(t, err)
		require.Len(t, candidates, 2)
		assert.Nil(t, candidates[0].Views)
		assert.Equal(t, "short", candidates[0].Description)
	})

	t.Run("quota exhaustion is reported", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusForbidden, `{"error":{"code":403,"message":"quota",
				"errors":[{"domain":"youtube.quota","reason":"quotaExceeded","message":"quota"}]}}`)
		})

		_, err := p.Search(context.Background(), "docker")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrQuotaExceeded))
		assert.True(t, IsQuotaExceeded(err))
	})

	t.Run("invalid key maps to auth sentinel", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid",
				"errors":[{"domain":"usageLimits","reason":"keyInvalid","message":"bad key"}]}}`)
		})

		_, err := p.Search(context.Background(), "docker")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrAuthInvalid))
	})

	t.Run("empty search skips statistics call", func(t *testing.T) {
		var videoCalls atomic.Int32
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/videos") {
				videoCalls.Add(1)
			}
			writeJSON(w, http.StatusOK, `{"items":[]}`)
		})

		candidates, err := p.Search(context.Background(), "zzqx")
		require.NoError(t, err)
		assert.Empty(t, candidates)
		assert.Zero(t, videoCalls.Load())
	})
}

func TestProvider_Normalize(t *testing.T) {
	p := New(nil, 10)
	p.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	res, ok := p.Normalize(domain.RawCandidate{
		Title: "Learn Docker",
		URL:   "https://www.youtube.com/watch?v=abc123&feature=share",
	})
	require.True(t, ok)
	assert.Equal(t, "https://youtube.com/watch?v=abc123", res.URL)
	assert.Equal(t, "youtube", res.SourceProvider)
	assert.Equal(t, "YouTube", res.Source)
	assert.True(t, res.IsTutorial)

	_, ok = p.Normalize(domain.RawCandidate{URL: "https://youtube.com/watch?v=x"})
	assert.False(t, ok)
}
