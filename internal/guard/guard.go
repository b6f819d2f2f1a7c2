// ABOUTME: Permission-aware wrapper installed around every MCP tool handler.
// ABOUTME: Checks tool and project access, then filters the response.

// Package guard enforces the permission rules on the MCP boundary. Every
// tool handler is registered through Wrap, which checks tool access,
// checks access to any project referenced by the arguments, invokes the
// handler, and filters the response before it reaches the client.
//
// Denials are returned as MCP error results with a user-visible message,
// never as transport errors.
package guard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lintgate/lintgate/internal/auth"
	"github.com/lintgate/lintgate/internal/permission"
)

// Handler produces a tool's raw response value from its arguments. The
// guard renders the value to an MCP result after filtering: strings
// become plain text, everything else is marshaled as indented JSON.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Guard wraps tool handlers with permission enforcement.
type Guard struct {
	svc     *permission.Service
	enabled bool
	logger  *slog.Logger
}

// New creates a guard over the permission service. With enabled false, or
// a nil service, Wrap passes calls straight through.
func New(svc *permission.Service, enabled bool, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		svc:     svc,
		enabled: enabled && svc != nil,
		logger:  logger.With("component", "guard"),
	}
}

// Enabled reports whether permission enforcement is active.
func (g *Guard) Enabled() bool {
	return g.enabled
}

// Wrap turns a raw handler into an MCP tool handler enforcing the
// permission rules for the named tool.
func (g *Guard) Wrap(tool string, handler Handler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.Params.Arguments

		if !g.enabled {
			out, err := handler(ctx, args)
			if err != nil {
				return toolFailed(tool, err), nil
			}
			return render(out)
		}

		user := auth.UserFromContext(ctx)

		if res := g.svc.CheckToolAccess(ctx, user, tool); !res.Allowed {
			g.logger.Info("tool access denied",
				"tool", tool,
				"reason", res.Reason,
			)
			return mcp.NewToolResultError(fmt.Sprintf("Access denied to tool '%s': %s", tool, res.Reason)), nil
		}

		if keys := ProjectKeysFromArgs(args); len(keys) > 0 {
			if res := g.svc.CheckMultipleProjectAccess(ctx, user, keys); !res.Allowed {
				g.logger.Info("project access denied",
					"tool", tool,
					"reason", res.Reason,
				)
				// The reason already names the failing project.
				return mcp.NewToolResultError(res.Reason), nil
			}
		}

		out, err := handler(ctx, args)
		if err != nil {
			g.logger.Error("tool failed",
				"tool", tool,
				"error", err,
			)
			return toolFailed(tool, err), nil
		}

		return render(g.filterResponse(user, tool, out))
	}
}

// toolFailed converts a handler error into an MCP error result. The
// message shape differs from access denials so clients can tell an
// upstream failure from a policy decision.
func toolFailed(tool string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Tool '%s' failed: %s", tool, err))
}

// render converts a handler's value into an MCP result.
func render(out any) (*mcp.CallToolResult, error) {
	if s, ok := out.(string); ok {
		return mcp.NewToolResultText(s), nil
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode response: %s", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
