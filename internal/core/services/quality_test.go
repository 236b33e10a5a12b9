package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

func newTestQualityScorer() *QualityScorer {
	return NewQualityScorer(domain.DefaultDiscoverySettings().Quality, func() time.Time { return testNow })
}

func metricResource(views, likes, comments int64, ageDays int) domain.Resource {
	published := testNow.AddDate(0, 0, -ageDays)
	return domain.Resource{
		Views:       &views,
		Likes:       &likes,
		Comments:    &comments,
		PublishedAt: &published,
	}
}

func TestQualityScorer_Formula(t *testing.T) {
	s := newTestQualityScorer()

	// Older than a year: no fresh boost, half the recency credit.
	r := metricResource(999, 100, 9, 365)
	want := 0.35*3 + 0.35*100*(100.0/999) + 0.15*1 + 0.15*0.5

	assert.InDelta(t, want, s.Score(&r), 1e-9)
}

func TestQualityScorer_Boosts(t *testing.T) {
	s := newTestQualityScorer()
	base := metricResource(9999, 500, 99, 400)
	baseScore := s.Score(&base)

	tutorial := base
	tutorial.IsTutorial = true
	assert.InDelta(t, baseScore*1.2, s.Score(&tutorial), 1e-9)

	comprehensive := base
	comprehensive.IsComprehensive = true
	assert.InDelta(t, baseScore*1.25, s.Score(&comprehensive), 1e-9)

	both := base
	both.IsTutorial = true
	both.IsComprehensive = true
	assert.InDelta(t, baseScore*1.2*1.25, s.Score(&both), 1e-9)

	fresh := metricResource(9999, 500, 99, 100)
	recency := 0.15 * (1 - 100.0/730)
	unboosted := 0.35*4 + 0.35*100*(500.0/9999) + 0.15*2 + recency
	assert.InDelta(t, unboosted*1.1, s.Score(&fresh), 1e-9)
}

func TestQualityScorer_MissingData(t *testing.T) {
	s := newTestQualityScorer()

	t.Run("no metrics and no date", func(t *testing.T) {
		assert.Zero(t, s.Score(&domain.Resource{}))
	})

	t.Run("no date means no recency and no freshness", func(t *testing.T) {
		views := int64(99)
		r := domain.Resource{Views: &views}
		assert.InDelta(t, 0.35*2, s.Score(&r), 1e-9)
	})

	t.Run("likes with zero views do not divide by zero", func(t *testing.T) {
		r := metricResource(0, 5, 0, 1000)
		score := s.Score(&r)
		assert.False(t, math.IsInf(score, 0))
		assert.InDelta(t, 0.35*100*5, score, 1e-9)
	})

	t.Run("future dates count as brand new", func(t *testing.T) {
		r := metricResource(0, 0, 0, -30)
		assert.InDelta(t, 0.15*1.1, s.Score(&r), 1e-9)
	})
}

func TestQualityScorer_Baseline(t *testing.T) {
	assert.Equal(t, 1.0, newTestQualityScorer().Baseline())
}
