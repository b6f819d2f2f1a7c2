// ABOUTME: Upstream health, status, and ping tools.

package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lintgate/lintgate/internal/catalog"
)

func (r *Registry) registerSystemTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(catalog.ToolSystemHealth,
		mcp.WithDescription("Get the health of the upstream platform."),
		mcp.WithToolAnnotation(readAnnotation("System Health")),
	), r.guard.Wrap(catalog.ToolSystemHealth, r.handleSystemHealth))

	s.AddTool(mcp.NewTool(catalog.ToolSystemStatus,
		mcp.WithDescription("Get the status and version of the upstream platform."),
		mcp.WithToolAnnotation(readAnnotation("System Status")),
	), r.guard.Wrap(catalog.ToolSystemStatus, r.handleSystemStatus))

	s.AddTool(mcp.NewTool(catalog.ToolSystemPing,
		mcp.WithDescription("Ping the upstream platform. Answers pong when it is reachable."),
		mcp.WithToolAnnotation(readAnnotation("System Ping")),
	), r.guard.Wrap(catalog.ToolSystemPing, r.handleSystemPing))
}

func (r *Registry) handleSystemHealth(ctx context.Context, _ map[string]any) (any, error) {
	return r.client.Health(ctx)
}

func (r *Registry) handleSystemStatus(ctx context.Context, _ map[string]any) (any, error) {
	return r.client.Status(ctx)
}

func (r *Registry) handleSystemPing(ctx context.Context, _ map[string]any) (any, error) {
	return r.client.Ping(ctx)
}
