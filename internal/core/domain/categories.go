package domain

import "strings"

// DomainCategory groups terms that signal a broad subject area.
// A candidate mentioning these terms earns a relevance bonus when the
// subject belongs to the same category.
type DomainCategory struct {
	// Name is the category tag (e.g. "programming").
	Name string

	// Terms are lowercase single words or short phrases.
	Terms []string
}

// DomainCategories is the static domain table. Order matters: a subject is
// assigned the first category that matches.
var DomainCategories = []DomainCategory{
	{
		Name: "version-control",
		Terms: []string{
			"git", "github", "gitlab", "version control", "branching", "commit", "merge",
		},
	},
	{
		Name: "web",
		Terms: []string{
			"html", "css", "react", "angular", "vue", "frontend", "backend", "web",
			"rest", "api", "graphql", "http", "node.js", "nodejs",
		},
	},
	{
		Name: "programming",
		Terms: []string{
			"python", "javascript", "typescript", "java", "golang", "go", "rust", "ruby",
			"php", "kotlin", "swift", "c++", "c#", "programming", "coding", "software",
		},
	},
	{
		Name: "data",
		Terms: []string{
			"data", "sql", "database", "analytics", "statistics", "pandas",
			"visualization", "tableau", "excel", "spark", "etl",
		},
	},
	{
		Name: "ai",
		Terms: []string{
			"machine learning", "deep learning", "neural network", "tensorflow",
			"pytorch", "artificial intelligence", "nlp", "llm",
		},
	},
	{
		Name: "devops",
		Terms: []string{
			"docker", "kubernetes", "devops", "terraform", "aws", "azure", "gcp",
			"linux", "jenkins", "ansible", "cloud", "ci/cd",
		},
	},
	{
		Name: "security",
		Terms: []string{
			"security", "cybersecurity", "penetration testing", "encryption",
			"firewall", "vulnerability",
		},
	},
	{
		Name: "design",
		Terms: []string{
			"figma", "ux", "ui", "user experience", "prototyping", "photoshop",
		},
	},
	{
		Name: "management",
		Terms: []string{
			"agile", "scrum", "project management", "leadership", "kanban", "stakeholder",
		},
	},
}

// InferDomainCategory returns the first category whose terms include one of
// the keywords, or whose multi-word terms occur in text. Returns "" when no
// category applies.
func InferDomainCategory(text string, keywords []string) string {
	for _, cat := range DomainCategories {
		for _, term := range cat.Terms {
			if strings.Contains(term, " ") {
				if strings.Contains(text, term) {
					return cat.Name
				}
				continue
			}
			for _, kw := range keywords {
				if kw == term {
					return cat.Name
				}
			}
		}
	}
	return ""
}

// CategoryTerms returns the terms of the named category, or nil.
func CategoryTerms(name string) []string {
	if name == "" {
		return nil
	}
	for _, cat := range DomainCategories {
		if cat.Name == name {
			return cat.Terms
		}
	}
	return nil
}
