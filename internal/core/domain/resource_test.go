package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resourceNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(days int) *time.Time {
	t := resourceNow.AddDate(0, 0, -days)
	return &t
}

func TestClassifyContent(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		published   *time.Time
		want        ContentFlags
	}{
		{"tutorial word", "Docker Tutorial", "", nil, ContentFlags{IsTutorial: true}},
		{"tutorial phrase in description", "Docker", "How to ship containers", nil, ContentFlags{IsTutorial: true}},
		{"learn matches learning", "Learning Docker", "", nil, ContentFlags{IsTutorial: true}},
		{"comprehensive", "Docker Masterclass", "", nil, ContentFlags{IsComprehensive: true}},
		{"both", "Complete Docker Course", "", nil, ContentFlags{IsTutorial: true, IsComprehensive: true}},
		{"recent", "Docker", "", daysAgo(100), ContentFlags{IsRecent: true}},
		{"old", "Docker", "", daysAgo(800), ContentFlags{}},
		{"no date is not recent", "Docker", "", nil, ContentFlags{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyContent(tt.title, tt.description, tt.published, resourceNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewResource(t *testing.T) {
	t.Run("valid candidate", func(t *testing.T) {
		views := int64(1200)
		res, ok := NewResource(RawCandidate{
			Title:       "  Docker Crash Course  ",
			URL:         "https://www.youtube.com/watch?v=abc&utm_source=feed",
			Author:      " TechWorld ",
			Description: "Learn docker in one hour",
			Views:       &views,
			PublishedAt: daysAgo(30),
		}, ProviderYouTube, "YouTube", resourceNow)
		require.True(t, ok)

		assert.Equal(t, "Docker Crash Course", res.Title)
		assert.Equal(t, "https://youtube.com/watch?v=abc", res.URL)
		assert.Equal(t, "TechWorld", res.Author)
		assert.Equal(t, ProviderYouTube, res.SourceProvider)
		assert.Equal(t, "YouTube", res.Source)
		assert.Equal(t, &views, res.Views)
		assert.True(t, res.IsTutorial)
		assert.False(t, res.IsComprehensive)
		assert.True(t, res.IsRecent)
		assert.Zero(t, res.CompositeScore)
	})

	tests := []struct {
		name string
		raw  RawCandidate
	}{
		{"missing title", RawCandidate{URL: "https://example.com"}},
		{"blank title", RawCandidate{Title: "  ", URL: "https://example.com"}},
		{"missing url", RawCandidate{Title: "Docker"}},
		{"relative url", RawCandidate{Title: "Docker", URL: "/docs/docker"}},
		{"non-http url", RawCandidate{Title: "Docker", URL: "ftp://example.com/docker"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := NewResource(tt.raw, ProviderGitHub, "GitHub", resourceNow)
			assert.False(t, ok)
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"youtube watch keeps only v", "https://www.youtube.com/watch?v=abc&list=PL1&utm_source=x", "https://youtube.com/watch?v=abc"},
		{"youtu.be short link", "https://youtu.be/abc?si=xyz", "https://youtube.com/watch?v=abc"},
		{"mobile youtube", "https://m.youtube.com/watch?v=abc&feature=share", "https://youtube.com/watch?v=abc"},
		{"tracking stripped and query sorted", "http://Example.com/Path/?b=2&a=1&utm_medium=e#frag", "https://example.com/Path?a=1&b=2"},
		{"trailing slash", "https://github.com/user/repo/", "https://github.com/user/repo"},
		{"bare host", "https://www.example.com", "https://example.com"},
		{"surrounding space", "  https://example.com/a  ", "https://example.com/a"},
		{"non-default port kept", "http://localhost:8080/docs/", "https://localhost:8080/docs"},
		{"default https port dropped", "https://example.com:443/a", "https://example.com/a"},
		{"default http port dropped", "http://example.com:80/a", "https://example.com/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeURL(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	invalid := []string{"", "not a url", "mailto:someone@example.com", "ftp://example.com", "https://youtu.be/"}
	for _, raw := range invalid {
		t.Run("invalid "+raw, func(t *testing.T) {
			_, ok := NormalizeURL(raw)
			assert.False(t, ok)
		})
	}
}

func TestNormalizeURL_SameContentSameKey(t *testing.T) {
	a, ok := NormalizeURL("https://youtu.be/xyz")
	require.True(t, ok)
	b, ok := NormalizeURL("https://www.youtube.com/watch?v=xyz&t=42")
	require.True(t, ok)
	assert.Equal(t, a, b)
}

func TestNormalizeURL_PortsAreDistinct(t *testing.T) {
	a, ok := NormalizeURL("https://docs.example.com:8443/guide")
	require.True(t, ok)
	b, ok := NormalizeURL("https://docs.example.com/guide")
	require.True(t, ok)
	assert.NotEqual(t, a, b)
}

func TestInferSource(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.coursera.org/learn/docker", "Coursera"},
		{"https://youtube.com/watch?v=abc", "YouTube"},
		{"https://gist.github.com/someone/1", "GitHub"},
		{"https://developer.mozilla.org/en-US/docs/Web", "MDN Web Docs"},
		{"https://docs.python.org/3/tutorial", "docs.python.org"},
		{"", "Web"},
		{"::bad", "Web"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, InferSource(tt.url))
		})
	}
}

func TestResource_AgeDays(t *testing.T) {
	t.Run("no date", func(t *testing.T) {
		r := Resource{}
		_, ok := r.AgeDays(resourceNow)
		assert.False(t, ok)
	})

	t.Run("past date", func(t *testing.T) {
		r := Resource{PublishedAt: daysAgo(10)}
		age, ok := r.AgeDays(resourceNow)
		require.True(t, ok)
		assert.InDelta(t, 10, age, 0.001)
	})

	t.Run("future date clamps to zero", func(t *testing.T) {
		future := resourceNow.Add(48 * time.Hour)
		r := Resource{PublishedAt: &future}
		age, ok := r.AgeDays(resourceNow)
		require.True(t, ok)
		assert.Zero(t, age)
	})
}
