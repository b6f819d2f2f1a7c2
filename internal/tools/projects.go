// ABOUTME: Project and component search tools.
// ABOUTME: Both results are filtered to the caller's accessible projects.

package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lintgate/lintgate/internal/catalog"
	"github.com/lintgate/lintgate/internal/upstream"
)

func (r *Registry) registerProjectTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(catalog.ToolProjects,
		mcp.WithDescription("List projects known to the code quality platform. Results are filtered to the projects the caller may access."),
		mcp.WithString("query",
			mcp.Description("Limit results to projects whose name or key contains this text"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page number"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Page size, up to 500"),
		),
		mcp.WithToolAnnotation(readAnnotation("List Projects")),
	), r.guard.Wrap(catalog.ToolProjects, r.handleProjects))

	s.AddTool(mcp.NewTool(catalog.ToolComponents,
		mcp.WithDescription("Search components (projects, directories, files) by name or key. Results are filtered to the projects the caller may access."),
		mcp.WithString("query",
			mcp.Description("Text to match against component names and keys"),
		),
		mcp.WithArray("qualifiers",
			mcp.Description("Component qualifiers to include, e.g. TRK (project), FIL (file), DIR (directory)"),
		),
		mcp.WithString("language",
			mcp.Description("Restrict results to components of this language"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page number"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Page size, up to 500"),
		),
		mcp.WithToolAnnotation(readAnnotation("Search Components")),
	), r.guard.Wrap(catalog.ToolComponents, r.handleComponents))
}

func (r *Registry) handleProjects(ctx context.Context, args map[string]any) (any, error) {
	return r.client.SearchProjects(ctx, upstream.ProjectQuery{
		Query:    stringArg(args, "query"),
		Page:     intArg(args, "page"),
		PageSize: intArg(args, "page_size"),
	})
}

func (r *Registry) handleComponents(ctx context.Context, args map[string]any) (any, error) {
	return r.client.SearchComponents(ctx, upstream.ComponentQuery{
		Query:      stringArg(args, "query"),
		Qualifiers: stringListArg(args, "qualifiers"),
		Language:   stringArg(args, "language"),
		Page:       intArg(args, "page"),
		PageSize:   intArg(args, "page_size"),
	})
}
