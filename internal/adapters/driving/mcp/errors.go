// Package mcp provides an MCP (Model Context Protocol) server adapter for
// skillscout. It lets AI assistants discover learning resources through the
// discovery service.
package mcp

import "errors"

// ErrMissingDiscoveryService is returned when the discovery service is not provided.
var ErrMissingDiscoveryService = errors.New("mcp: discovery service is required")
