package services

import (
	"math"
	"time"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// QualityScorer scores a resource's intrinsic popularity, engagement,
// recency and content-type signals.
type QualityScorer struct {
	weights domain.QualityWeights
	now     func() time.Time
}

// NewQualityScorer creates a scorer. A nil clock uses time.Now.
func NewQualityScorer(weights domain.QualityWeights, now func() time.Time) *QualityScorer {
	if now == nil {
		now = time.Now
	}
	return &QualityScorer{weights: weights, now: now}
}

// Baseline is the flat score given to resources from providers without metrics.
func (s *QualityScorer) Baseline() float64 {
	return s.weights.Baseline
}

// Score computes
//
//	Views*log10(views+1) + Engagement*100*likes/max(views,1)
//	  + Comments*log10(comments+1) + Recency*max(0, 1-age/window)
//
// then applies the tutorial, comprehensive and freshness boosts.
func (s *QualityScorer) Score(r *domain.Resource) float64 {
	w := s.weights
	views := float64(deref(r.Views))
	likes := float64(deref(r.Likes))
	comments := float64(deref(r.Comments))

	var recency float64
	age, dated := r.AgeDays(s.now())
	if dated && w.RecencyWindowDays > 0 {
		recency = math.Max(0, 1-age/w.RecencyWindowDays)
	}

	score := w.Views*math.Log10(views+1) +
		w.Engagement*100*(likes/math.Max(views, 1)) +
		w.Comments*math.Log10(comments+1) +
		w.Recency*recency

	if r.IsTutorial {
		score *= w.TutorialBoost
	}
	if r.IsComprehensive {
		score *= w.ComprehensiveBoost
	}
	if dated && age < w.FreshWindowDays {
		score *= w.FreshBoost
	}

	return score
}

func deref(v *int64) int64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
