package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for skillscout resources.
	uriScheme = "skillscout://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "providers",
		Name:        "providers",
		Description: "Active content providers in ranking priority order",
		MIMEType:    "application/json",
	}, s.handleProvidersResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "Domain categories used for relevance bonuses",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "categories/{name}",
		Name:        "category-terms",
		Description: "Terms that signal a specific domain category",
		MIMEType:    "application/json",
	}, s.handleCategoryResource)
}

// handleProvidersResource lists the active providers.
func (s *Server) handleProvidersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type providerInfo struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Style      string `json:"style"`
		HasMetrics bool   `json:"has_metrics"`
	}

	profiles := s.ports.Discovery.Providers()
	infos := make([]providerInfo, len(profiles))
	for i, p := range profiles {
		infos[i] = providerInfo{
			ID:         p.ID,
			Name:       p.Name,
			Style:      string(p.Style),
			HasMetrics: p.HasMetrics,
		}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleCategoriesResource lists category names.
func (s *Server) handleCategoriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	names := make([]string, len(domain.DomainCategories))
	for i, cat := range domain.DomainCategories {
		names[i] = cat.Name
	}
	return jsonResource(req.Params.URI, names)
}

// handleCategoryResource returns the terms of one category.
func (s *Server) handleCategoryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractCategoryName(req.Params.URI)
	terms := domain.CategoryTerms(name)
	if terms == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, terms)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCategoryName extracts the name from a URI like skillscout://categories/{name}.
func extractCategoryName(uri string) string {
	const prefix = uriScheme + "categories/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
