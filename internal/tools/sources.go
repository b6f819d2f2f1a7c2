// ABOUTME: Raw source and SCM blame tools. Both return plain text.

package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lintgate/lintgate/internal/catalog"
)

func (r *Registry) registerSourceTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(catalog.ToolSourceCode,
		mcp.WithDescription("Get the raw source of a file component."),
		mcp.WithString("component",
			mcp.Required(),
			mcp.Description("File component key"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch to read from"),
		),
		mcp.WithString("pull_request",
			mcp.Description("Pull request to read from"),
		),
		mcp.WithToolAnnotation(readAnnotation("Source Code")),
	), r.guard.Wrap(catalog.ToolSourceCode, r.handleSourceCode))

	s.AddTool(mcp.NewTool(catalog.ToolScmBlame,
		mcp.WithDescription("Get SCM blame information for a file component."),
		mcp.WithString("component",
			mcp.Required(),
			mcp.Description("File component key"),
		),
		mcp.WithNumber("from",
			mcp.Description("First line to blame (1-based)"),
		),
		mcp.WithNumber("to",
			mcp.Description("Last line to blame (inclusive)"),
		),
		mcp.WithToolAnnotation(readAnnotation("SCM Blame")),
	), r.guard.Wrap(catalog.ToolScmBlame, r.handleScmBlame))
}

func (r *Registry) handleSourceCode(ctx context.Context, args map[string]any) (any, error) {
	component := stringArg(args, "component")
	if component == "" {
		return nil, errors.New("component is required")
	}
	return r.client.RawSource(ctx, component, stringArg(args, "branch"), stringArg(args, "pull_request"))
}

func (r *Registry) handleScmBlame(ctx context.Context, args map[string]any) (any, error) {
	component := stringArg(args, "component")
	if component == "" {
		return nil, errors.New("component is required")
	}
	return r.client.ScmBlame(ctx, component, intArg(args, "from"), intArg(args, "to"))
}
