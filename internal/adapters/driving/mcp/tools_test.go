package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

func TestServer_handleDiscover(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked resources", func(t *testing.T) {
		mock := &mockDiscoveryService{
			results: []domain.Resource{
				{
					Title:          "Docker Tutorial for Beginners",
					URL:            "https://www.youtube.com/watch?v=abc",
					Source:         "YouTube",
					Author:         "TechWorld",
					DurationText:   "1h 05m",
					ViewsText:      "3.4M",
					QualityLabel:   "Highly Recommended",
					CompositeScore: 182.5,
				},
				{
					Title:          "docker/awesome-compose",
					URL:            "https://github.com/docker/awesome-compose",
					Source:         "GitHub",
					QualityLabel:   "Recommended",
					CompositeScore: 80,
				},
			},
		}
		server, err := NewServer(&Ports{Discovery: mock})
		require.NoError(t, err)

		_, output, err := server.handleDiscover(ctx, nil, DiscoverInput{Subject: "Docker", Kind: "skill", Limit: 3})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Results, 2)
		first := output.Results[0]
		assert.Equal(t, "Docker Tutorial for Beginners", first.Title)
		assert.Equal(t, "YouTube", first.Source)
		assert.Equal(t, "1h 05m", first.Duration)
		assert.Equal(t, "3.4M", first.Views)
		assert.Equal(t, "Highly Recommended", first.QualityLabel)
		assert.Equal(t, 182.5, first.CompositeScore)

		assert.Equal(t, domain.DiscoveryRequest{Subject: "Docker", Kind: domain.SubjectSkill, Limit: 3}, mock.lastReq)
	})

	t.Run("empty kind defaults to skill", func(t *testing.T) {
		mock := &mockDiscoveryService{}
		server, err := NewServer(&Ports{Discovery: mock})
		require.NoError(t, err)

		_, output, err := server.handleDiscover(ctx, nil, DiscoverInput{Subject: "Data Engineer"})

		require.NoError(t, err)
		assert.Equal(t, domain.SubjectSkill, mock.lastReq.Kind)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Results)
	})

	t.Run("role kind is passed through", func(t *testing.T) {
		mock := &mockDiscoveryService{}
		server, err := NewServer(&Ports{Discovery: mock})
		require.NoError(t, err)

		_, _, err = server.handleDiscover(ctx, nil, DiscoverInput{Subject: "Data Engineer", Kind: "role"})

		require.NoError(t, err)
		assert.Equal(t, domain.SubjectRole, mock.lastReq.Kind)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		mock := &mockDiscoveryService{}
		server, err := NewServer(&Ports{Discovery: mock})
		require.NoError(t, err)

		_, _, err = server.handleDiscover(ctx, nil, DiscoverInput{Subject: "Docker", Kind: "podcast"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
		assert.Empty(t, mock.lastReq.Subject)
	})
}
