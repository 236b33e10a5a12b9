package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SpecialCascade is a hand-tuned list of phrasings for a topic where naive
// keyword search returns high-recall, low-precision noise.
type SpecialCascade struct {
	// Keys is the exact keyword set that selects this entry.
	Keys []string

	// Aliases are whole subject texts that also select this entry.
	Aliases []string

	// Queries replace the generic cascade, most specific first.
	Queries []string
}

// Special cascade table limits.
const (
	minSpecialQueries = 3
	maxSpecialQueries = 5
)

// SpecialCascades is the static special-case table consulted by the
// query planner for skill subjects.
var SpecialCascades = []SpecialCascade{
	{
		Keys:    []string{"git"},
		Aliases: []string{"git scm"},
		Queries: []string{
			"git tutorial for beginners",
			"git and github crash course",
			"git version control course",
			"learn git branching",
		},
	},
	{
		Keys: []string{"github"},
		Queries: []string{
			"github tutorial for beginners",
			"git and github crash course",
			"github for beginners course",
			"github actions tutorial",
		},
	},
	{
		Keys:    []string{"version", "control"},
		Aliases: []string{"version control systems", "source control"},
		Queries: []string{
			"version control with git",
			"git version control tutorial",
			"version control course",
			"git and github crash course",
		},
	},
	{
		Keys:    []string{"rest", "api"},
		Aliases: []string{"restful api", "restful apis", "rest apis"},
		Queries: []string{
			"rest api design tutorial",
			"restful api tutorial",
			"rest api crash course",
			"build a rest api",
			"rest api design best practices",
		},
	},
	{
		Keys:    []string{"api", "design"},
		Aliases: []string{"web api design"},
		Queries: []string{
			"api design best practices",
			"rest api design tutorial",
			"designing web apis course",
			"api design course",
		},
	},
	{
		Keys: []string{"graphql"},
		Queries: []string{
			"graphql tutorial for beginners",
			"graphql api course",
			"graphql crash course",
			"learn graphql",
		},
	},
	{
		Keys:    []string{"microservices"},
		Aliases: []string{"microservice architecture", "microservices architecture"},
		Queries: []string{
			"microservices architecture tutorial",
			"microservices course",
			"designing microservices",
			"microservices crash course",
		},
	},
	{
		Keys:    []string{"go"},
		Aliases: []string{"golang", "go programming", "go language"},
		Queries: []string{
			"golang tutorial for beginners",
			"go programming language course",
			"learn golang",
			"golang crash course",
		},
	},
	{
		Keys:    []string{"r"},
		Aliases: []string{"r programming", "r language"},
		Queries: []string{
			"r programming tutorial",
			"r programming for data science",
			"learn r programming",
			"r programming course",
		},
	},
	{
		Keys:    []string{"c"},
		Aliases: []string{"c programming", "c language"},
		Queries: []string{
			"c programming tutorial for beginners",
			"c programming language course",
			"learn c programming",
		},
	},
}

// ValidateSpecialCascades checks a special-case table for programming
// errors: empty keys, out-of-range query counts and duplicate key sets.
func ValidateSpecialCascades(table []SpecialCascade) error {
	seen := make(map[string]int, len(table))
	for i, entry := range table {
		if len(entry.Keys) == 0 {
			return fmt.Errorf("%w: entry %d has no keys", ErrInvalidCascadeTable, i)
		}
		if n := len(entry.Queries); n < minSpecialQueries || n > maxSpecialQueries {
			return fmt.Errorf("%w: entry %d has %d queries, want %d-%d",
				ErrInvalidCascadeTable, i, n, minSpecialQueries, maxSpecialQueries)
		}
		for _, q := range entry.Queries {
			if strings.TrimSpace(q) == "" {
				return fmt.Errorf("%w: entry %d has an empty query", ErrInvalidCascadeTable, i)
			}
		}
		key := keySetID(entry.Keys)
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: entries %d and %d share keys %q", ErrInvalidCascadeTable, prev, i, key)
		}
		seen[key] = i
	}
	return nil
}

// MatchSpecialCascade returns the first entry of table selected by the
// subject, comparing keyword sets order-insensitively.
func MatchSpecialCascade(table []SpecialCascade, subject SubjectQuery) (SpecialCascade, bool) {
	want := keySetID(subject.keywords)
	for _, entry := range table {
		if keySetID(entry.Keys) == want {
			return entry, true
		}
		for _, alias := range entry.Aliases {
			if alias == subject.text {
				return entry, true
			}
		}
	}
	return SpecialCascade{}, false
}

func keySetID(keys []string) string {
	sorted := make([]string, len(keys))
	for i, k := range keys {
		sorted[i] = strings.ToLower(k)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}
