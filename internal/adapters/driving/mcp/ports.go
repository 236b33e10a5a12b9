package mcp

import (
	"net/http"

	"github.com/custodia-labs/skillscout/internal/core/ports/driving"
)

// Ports aggregates everything the MCP server is driven by.
type Ports struct {
	// Discovery finds and ranks learning resources.
	Discovery driving.DiscoveryService

	// Metrics, when set, is served at /metrics in HTTP mode.
	Metrics http.Handler
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Discovery == nil {
		return ErrMissingDiscoveryService
	}
	return nil
}
