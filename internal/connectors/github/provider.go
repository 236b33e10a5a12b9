package github

import (
	"context"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

const (
	// DisplayName is the source label for GitHub results.
	DisplayName = "GitHub"

	// searchQualifiers are appended to every query.
	searchQualifiers = "archived:false"

	// typeRepository is the content type of every GitHub candidate.
	typeRepository = "repository"
)

// Provider searches GitHub repositories.
type Provider struct {
	client     *Client
	maxResults int
	now        func() time.Time
}

// New creates a GitHub provider. maxResults is the page size per search.
func New(client *Client, maxResults int) *Provider {
	return &Provider{
		client:     client,
		maxResults: maxResults,
		now:        time.Now,
	}
}

// ID returns the provider identifier.
func (p *Provider) ID() string {
	return domain.ProviderGitHub
}

// Profile describes the provider.
func (p *Provider) Profile() domain.ProviderProfile {
	return domain.ProviderProfile{
		ID:    domain.ProviderGitHub,
		Name:  DisplayName,
		Style: domain.QueryStyleRepository,
	}
}

// Search runs one repository search.
func (p *Provider) Search(ctx context.Context, query string) ([]domain.RawCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	repos, err := p.client.SearchRepositories(ctx, query+" "+searchQualifiers, p.maxResults)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.RawCandidate, 0, len(repos))
	for _, repo := range repos {
		if repo == nil || repo.GetFork() {
			continue
		}
		candidates = append(candidates, toCandidate(repo))
	}
	return candidates, nil
}

// Normalize maps a repository candidate into a Resource.
func (p *Provider) Normalize(raw domain.RawCandidate) (domain.Resource, bool) {
	return domain.NewResource(raw, domain.ProviderGitHub, DisplayName, p.now())
}

func toCandidate(repo *gh.Repository) domain.RawCandidate {
	title := repo.GetFullName()
	if title == "" {
		title = repo.GetName()
	}

	raw := domain.RawCandidate{
		Title:       title,
		URL:         repo.GetHTMLURL(),
		Author:      repo.GetOwner().GetLogin(),
		Description: repo.GetDescription(),
		Thumbnail:   repo.GetOwner().GetAvatarURL(),
		Slug:        repo.GetFullName(),
		Type:        typeRepository,
	}

	if pushed := repo.GetPushedAt(); !pushed.IsZero() {
		t := pushed.Time
		raw.PublishedAt = &t
	} else if updated := repo.GetUpdatedAt(); !updated.IsZero() {
		t := updated.Time
		raw.PublishedAt = &t
	}

	if topics := repo.Topics; len(topics) > 0 {
		raw.Description = strings.TrimSpace(raw.Description + " " + strings.Join(topics, " "))
	}
	return raw
}
