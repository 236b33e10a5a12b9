package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// DiscoverInput is the input schema for the discover_resources tool.
type DiscoverInput struct {
	Subject string `json:"subject" jsonschema:"the skill, job role or phrase to find learning resources for"`
	Kind    string `json:"kind,omitempty" jsonschema:"skill, role or free_text (default skill)"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 5, at most 10)"`
}

// DiscoverOutput is the output schema for the discover_resources tool.
type DiscoverOutput struct {
	Results []ResourceOutput `json:"results"`
	Count   int              `json:"count"`
}

// ResourceOutput represents a single ranked resource.
type ResourceOutput struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Source         string  `json:"source"`
	Author         string  `json:"author,omitempty"`
	Description    string  `json:"description,omitempty"`
	Thumbnail      string  `json:"thumbnail,omitempty"`
	Duration       string  `json:"duration,omitempty"`
	Views          string  `json:"views,omitempty"`
	QualityLabel   string  `json:"quality_label"`
	CompositeScore float64 `json:"composite_score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "discover_resources",
		Description: "Find and rank learning resources (videos, courses, repositories, docs) " +
			"for a skill, job role or free-text subject",
	}, s.handleDiscover)
}

// handleDiscover handles the discover_resources tool invocation.
func (s *Server) handleDiscover(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DiscoverInput,
) (*mcp.CallToolResult, DiscoverOutput, error) {
	kind, err := domain.ParseSubjectKind(input.Kind)
	if err != nil {
		return nil, DiscoverOutput{}, fmt.Errorf("invalid kind: %w", err)
	}

	results := s.ports.Discovery.Discover(ctx, domain.DiscoveryRequest{
		Subject: input.Subject,
		Kind:    kind,
		Limit:   input.Limit,
	})

	output := DiscoverOutput{
		Results: make([]ResourceOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = toResourceOutput(&results[i])
	}

	return nil, output, nil
}

func toResourceOutput(r *domain.Resource) ResourceOutput {
	return ResourceOutput{
		Title:          r.Title,
		URL:            r.URL,
		Source:         r.Source,
		Author:         r.Author,
		Description:    r.Description,
		Thumbnail:      r.Thumbnail,
		Duration:       r.DurationText,
		Views:          r.ViewsText,
		QualityLabel:   r.QualityLabel,
		CompositeScore: r.CompositeScore,
	}
}
