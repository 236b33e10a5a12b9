// Package mdn implements a learning-resource provider backed by the MDN Web
// Docs site search API. It covers the reference-documentation category and
// reports no popularity metrics.
package mdn

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/skillscout/internal/connectors/httpjson"
	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
	"github.com/custodia-labs/skillscout/internal/normalisers/html"
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

const (
	// DisplayName is the source label for MDN results.
	DisplayName = "MDN Web Docs"

	// DefaultBaseURL is the MDN site root; the search API lives under it.
	DefaultBaseURL = "https://developer.mozilla.org"

	locale = "en-US"

	typeReference = "reference"
)

type searchResponse struct {
	Documents []document `json:"documents"`
}

type document struct {
	MDNURL  string `json:"mdn_url"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Locale  string `json:"locale"`
	Slug    string `json:"slug"`
}

// Provider searches MDN Web Docs.
type Provider struct {
	client     *httpjson.Client
	baseURL    string
	maxResults int
	now        func() time.Time
}

// New creates an MDN provider. An empty baseURL selects DefaultBaseURL.
func New(client *httpjson.Client, baseURL string, maxResults int) *Provider {
	if client == nil {
		client = httpjson.New(nil)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		client:     client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxResults: maxResults,
		now:        time.Now,
	}
}

// ID returns the provider identifier.
func (p *Provider) ID() string {
	return domain.ProviderMDN
}

// Profile describes the provider.
func (p *Provider) Profile() domain.ProviderProfile {
	return domain.ProviderProfile{
		ID:    domain.ProviderMDN,
		Name:  DisplayName,
		Style: domain.QueryStyleReference,
	}
}

// Search runs one site search.
func (p *Provider) Search(ctx context.Context, query string) ([]domain.RawCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("locale", locale)
	if p.maxResults > 0 {
		params.Set("size", strconv.Itoa(p.maxResults))
	}

	var resp searchResponse
	if err := p.client.Get(ctx, p.baseURL+"/api/v1/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	candidates := make([]domain.RawCandidate, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		if doc.MDNURL == "" {
			continue
		}
		candidates = append(candidates, domain.RawCandidate{
			Title:       html.Text(doc.Title),
			URL:         DefaultBaseURL + doc.MDNURL,
			Author:      DisplayName,
			Description: html.Summary(doc.Summary, html.DescriptionLimit),
			Language:    languageOf(doc.Locale),
			Slug:        doc.Slug,
			Type:        typeReference,
		})
	}
	return candidates, nil
}

// Normalize maps a document candidate into a Resource.
func (p *Provider) Normalize(raw domain.RawCandidate) (domain.Resource, bool) {
	return domain.NewResource(raw, domain.ProviderMDN, DisplayName, p.now())
}

// languageOf reduces "en-US" to "en".
func languageOf(loc string) string {
	lang, _, _ := strings.Cut(loc, "-")
	return strings.ToLower(lang)
}
