package coursera

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
	// DisplayName is the source label for Coursera results.
	DisplayName = "Coursera"

	// DefaultBaseURL is the public catalog API root.
	DefaultBaseURL = "https://api.coursera.org"

	siteURL = "https://www.coursera.org"

	searchFields = "slug,name,description,photoUrl,workload,courseType,primaryLanguages,partnerIds,partners.v1(name)"

	typeSpecialization = "specialization"
)

// catalogResponse is the courses.v1 search payload.
type catalogResponse struct {
	Elements []course `json:"elements"`
	Linked   struct {
		Partners []partner `json:"partners.v1"`
	} `json:"linked"`
}

type course struct {
	ID               string   `json:"id"`
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	PhotoURL         string   `json:"photoUrl"`
	Workload         string   `json:"workload"`
	CourseType       string   `json:"courseType"`
	PrimaryLanguages []string `json:"primaryLanguages"`
	PartnerIDs       []string `json:"partnerIds"`
}

type partner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Provider searches the Coursera catalog.
type Provider struct {
	client     *httpjson.Client
	baseURL    string
	maxResults int
	now        func() time.Time
}

// New creates a Coursera provider. An empty baseURL selects DefaultBaseURL.
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
	return domain.ProviderCoursera
}

// Profile describes the provider.
func (p *Provider) Profile() domain.ProviderProfile {
	return domain.ProviderProfile{
		ID:    domain.ProviderCoursera,
		Name:  DisplayName,
		Style: domain.QueryStyleCourse,
	}
}

// Search runs one catalog search.
func (p *Provider) Search(ctx context.Context, query string) ([]domain.RawCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", "search")
	params.Set("query", query)
	params.Set("fields", searchFields)
	params.Set("includes", "partnerIds")
	if p.maxResults > 0 {
		params.Set("limit", strconv.Itoa(p.maxResults))
	}

	var resp catalogResponse
	if err := p.client.Get(ctx, p.baseURL+"/api/courses.v1?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	partners := make(map[string]string, len(resp.Linked.Partners))
	for _, pt := range resp.Linked.Partners {
		partners[pt.ID] = pt.Name
	}

	candidates := make([]domain.RawCandidate, 0, len(resp.Elements))
	for _, c := range resp.Elements {
		if c.Slug == "" {
			continue
		}
		candidates = append(candidates, toCandidate(c, partners))
	}
	return candidates, nil
}

// Normalize maps a course candidate into a Resource.
func (p *Provider) Normalize(raw domain.RawCandidate) (domain.Resource, bool) {
	return domain.NewResource(raw, domain.ProviderCoursera, DisplayName, p.now())
}

func toCandidate(c course, partners map[string]string) domain.RawCandidate {
	kind := c.CourseType
	path := "/learn/"
	if strings.Contains(strings.ToLower(kind), typeSpecialization) {
		kind = typeSpecialization
		path = "/specializations/"
	}

	var authors []string
	for _, id := range c.PartnerIDs {
		if name := partners[id]; name != "" {
			authors = append(authors, name)
		}
	}

	raw := domain.RawCandidate{
		Title:       html.Text(c.Name),
		URL:         siteURL + path + url.PathEscape(c.Slug),
		Author:      strings.Join(authors, ", "),
		Description: html.Summary(c.Description, html.DescriptionLimit),
		Thumbnail:   c.PhotoURL,
		Slug:        c.Slug,
		Type:        kind,
	}
	if len(c.PrimaryLanguages) > 0 {
		raw.Language = c.PrimaryLanguages[0]
	}
	return raw
}
