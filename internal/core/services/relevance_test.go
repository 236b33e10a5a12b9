package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

func scoreOf(title, description, subject string) float64 {
	s := NewRelevanceScorer(domain.DefaultDiscoverySettings().Relevance)
	r := domain.Resource{Title: title, Description: description}
	return s.Score(&r, mustSubject(subject, domain.SubjectSkill))
}

func TestRelevanceScorer_CompoundGate(t *testing.T) {
	assert.Zero(t, scoreOf("API Gateway Tutorial", "Manage your api traffic", "REST API"),
		"only one of two keywords present")
	assert.Zero(t, scoreOf("Resting heart rate", "", "REST API"))

	// phrase in title 50 + two title keywords 30 + domain terms rest, api 20.
	assert.Equal(t, 100.0, scoreOf("REST API Tutorial", "", "REST API"))
}

func TestRelevanceScorer_SingleKeyword(t *testing.T) {
	t.Run("exact title", func(t *testing.T) {
		// exact 100 + keyword in title 15 + one docker domain term 10.
		assert.Equal(t, 125.0, scoreOf("Docker", "", "Docker"))
	})

	t.Run("description only", func(t *testing.T) {
		// keyword in description 5 + one docker domain term 10.
		assert.Equal(t, 15.0, scoreOf("Containers 101", "Learn docker fast", "Docker"))
	})

	t.Run("domain terms alone are not enough", func(t *testing.T) {
		assert.Zero(t, scoreOf("Kubernetes and AWS tutorial", "devops on linux", "Docker"))
	})

	t.Run("domain terms add per occurrence", func(t *testing.T) {
		plain := scoreOf("Docker in depth", "", "Docker")
		boosted := scoreOf("Docker in depth", "docker on kubernetes and aws", "Docker")
		// description keyword 5 + docker, kubernetes, aws occurrences 30.
		assert.Equal(t, plain+35, boosted)
	})
}

func TestRelevanceScorer_ShortKeywords(t *testing.T) {
	assert.Zero(t, scoreOf("Google Cloud basics", "a good intro", "Go"))
	assert.Positive(t, scoreOf("Go in 100 seconds", "", "Go"))
	assert.Positive(t, scoreOf("Learn Go: concurrency", "", "go"))
	assert.Zero(t, scoreOf("Rust programming", "random text", "R"))
}

func TestRelevanceScorer_KeywordsMustStartAWord(t *testing.T) {
	t.Run("compound keyword inside another word", func(t *testing.T) {
		assert.Zero(t, scoreOf("Interesting API patterns", "", "REST API"))
		assert.Zero(t, scoreOf("Practical API design", "an interesting take", "REST API"))
	})

	t.Run("single keyword inside another word", func(t *testing.T) {
		assert.Zero(t, scoreOf("Digital Marketing Course", "", "Git"))
		assert.Zero(t, scoreOf("Legitimate interest", "", "Git"))
	})

	t.Run("keyword as word prefix still matches", func(t *testing.T) {
		assert.Positive(t, scoreOf("RESTful APIs with Node", "", "REST API"))
		assert.Positive(t, scoreOf("Dockerfile best practices", "", "Docker"))
	})
}

func TestRelevanceScorer_PhraseBonusRespectsWords(t *testing.T) {
	// "go" inside "google" earns no phrase bonus: keyword in description 5
	// plus one go domain term 10.
	assert.Equal(t, 15.0, scoreOf("Google Sheets tips", "a go tutorial", "Go"))

	// phrase in title 50 + keyword in title 15 + one go domain term 10.
	assert.Equal(t, 75.0, scoreOf("Go by example", "", "Go"))

	// phrase at the start of a longer word still counts.
	assert.Equal(t, 100.0, scoreOf("REST APIs explained", "", "REST API"))
}

func TestRelevanceScorer_UsesOriginalSubject(t *testing.T) {
	// A result found by "docker crash course" is scored against "docker",
	// so titles without "crash course" are not penalised.
	assert.Equal(t,
		scoreOf("Docker for beginners", "", "Docker"),
		scoreOf("Docker for beginners", "", "docker"))
}

func TestRelevanceScorer_CustomWeights(t *testing.T) {
	s := NewRelevanceScorer(domain.RelevanceWeights{KeywordInTitle: 1})
	r := domain.Resource{Title: "Docker docs"}
	assert.Equal(t, 1.0, s.Score(&r, mustSubject("docker", domain.SubjectSkill)))
}
