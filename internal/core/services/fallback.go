package services

import (
	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// curatedEntry is a hand-picked resource list for one subject.
type curatedEntry struct {
	// Subjects are normalised subject texts selecting this entry.
	Subjects  []string
	Resources []domain.Resource
}

// curatedResources is consulted only when every provider came back empty.
var curatedResources = []curatedEntry{
	{
		Subjects: []string{"javascript", "js"},
		Resources: []domain.Resource{
			{
				Title:       "JavaScript Guide",
				URL:         "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Guide",
				Author:      "MDN Web Docs",
				Description: "An overview of the JavaScript language, from grammar and types to classes and modules.",
			},
			{
				Title:       "The Modern JavaScript Tutorial",
				URL:         "https://javascript.info",
				Author:      "Ilya Kantor",
				Description: "Modern JavaScript (JS) from the basics to advanced topics with simple explanations.",
			},
		},
	},
	{
		Subjects: []string{"python"},
		Resources: []domain.Resource{
			{
				Title:       "The Python Tutorial",
				URL:         "https://docs.python.org/3/tutorial",
				Author:      "Python Software Foundation",
				Description: "The official informal introduction to the Python language and its standard library.",
			},
		},
	},
	{
		Subjects: []string{"git", "git scm", "version control"},
		Resources: []domain.Resource{
			{
				Title:       "Pro Git book",
				URL:         "https://git-scm.com/book/en/v2",
				Author:      "Scott Chacon, Ben Straub",
				Description: "The complete Pro Git book on version control with git (git-scm), free to read online.",
			},
			{
				Title:       "Learn Git Branching",
				URL:         "https://learngitbranching.js.org",
				Description: "An interactive git visualisation tutorial for branching and commits.",
			},
		},
	},
	{
		Subjects: []string{"docker"},
		Resources: []domain.Resource{
			{
				Title:       "Docker Get Started",
				URL:         "https://docs.docker.com/get-started",
				Author:      "Docker",
				Description: "The official docker tutorial: build, run and share containerized applications.",
			},
		},
	},
	{
		Subjects: []string{"sql"},
		Resources: []domain.Resource{
			{
				Title:       "SQLBolt: Learn SQL with interactive exercises",
				URL:         "https://sqlbolt.com",
				Description: "Interactive lessons covering SQL queries, joins and aggregates.",
			},
		},
	},
	{
		Subjects: []string{"go", "golang"},
		Resources: []domain.Resource{
			{
				Title:       "A Tour of Go",
				URL:         "https://go.dev/tour",
				Author:      "The Go Authors",
				Description: "An interactive introduction to the Go programming language (golang).",
			},
			{
				Title:       "Effective Go",
				URL:         "https://go.dev/doc/effective_go",
				Author:      "The Go Authors",
				Description: "Tips for writing clear, idiomatic Go code.",
			},
		},
	},
}

// CuratedFallback returns the static resources for a subject, or nil.
// Returned resources are copies with their provider set to "curated".
func CuratedFallback(subject domain.SubjectQuery) []domain.Resource {
	for _, entry := range curatedResources {
		for _, s := range entry.Subjects {
			if s != subject.Text() {
				continue
			}
			out := make([]domain.Resource, len(entry.Resources))
			for i, res := range entry.Resources {
				res.SourceProvider = curatedProviderID
				out[i] = res
			}
			return out
		}
	}
	return nil
}

// curatedProviderID marks resources that came from the static table.
const curatedProviderID = "curated"
