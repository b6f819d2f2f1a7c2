// ABOUTME: Tool registry binding MCP tool definitions to guarded handlers.
// ABOUTME: Every tool in the catalog is registered here, read and write alike.

// Package tools defines the MCP tools the gateway exposes and their
// handlers. Definitions carry annotations matching the catalog's
// read/write classification; handlers translate MCP arguments into
// upstream API calls. Every handler passes through the permission guard
// at registration time.
package tools

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lintgate/lintgate/internal/catalog"
	"github.com/lintgate/lintgate/internal/guard"
	"github.com/lintgate/lintgate/internal/upstream"
)

// Registry registers the gateway's tools on an MCP server.
type Registry struct {
	client *upstream.Client
	guard  *guard.Guard
	logger *slog.Logger
}

// NewRegistry creates a registry over the upstream client and guard.
func NewRegistry(client *upstream.Client, g *guard.Guard, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		client: client,
		guard:  g,
		logger: logger.With("component", "tools"),
	}
}

// RegisterAll adds every cataloged tool to the server.
func (r *Registry) RegisterAll(s *server.MCPServer) {
	r.registerProjectTools(s)
	r.registerIssueTools(s)
	r.registerMeasureTools(s)
	r.registerQualityGateTools(s)
	r.registerSourceTools(s)
	r.registerHotspotTools(s)
	r.registerSystemTools(s)
	r.logger.Debug("tools registered", "count", len(catalog.Names()))
}

func boolPtr(b bool) *bool {
	return &b
}

// readAnnotation marks a tool that only queries upstream state.
func readAnnotation(title string) mcp.ToolAnnotation {
	return mcp.ToolAnnotation{
		Title:           title,
		ReadOnlyHint:    boolPtr(true),
		DestructiveHint: boolPtr(false),
		IdempotentHint:  boolPtr(true),
		OpenWorldHint:   boolPtr(true),
	}
}

// writeAnnotation marks a tool that changes upstream state.
func writeAnnotation(title string) mcp.ToolAnnotation {
	return mcp.ToolAnnotation{
		Title:           title,
		ReadOnlyHint:    boolPtr(false),
		DestructiveHint: boolPtr(false),
		IdempotentHint:  boolPtr(true),
		OpenWorldHint:   boolPtr(true),
	}
}
