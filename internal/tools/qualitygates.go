// ABOUTME: Quality gate listing, lookup, and project gate status tools.

package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lintgate/lintgate/internal/catalog"
	"github.com/lintgate/lintgate/internal/upstream"
)

func (r *Registry) registerQualityGateTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(catalog.ToolQualityGates,
		mcp.WithDescription("List all quality gates."),
		mcp.WithToolAnnotation(readAnnotation("List Quality Gates")),
	), r.guard.Wrap(catalog.ToolQualityGates, r.handleQualityGates))

	s.AddTool(mcp.NewTool(catalog.ToolQualityGate,
		mcp.WithDescription("Get a quality gate's conditions by name."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the quality gate"),
		),
		mcp.WithToolAnnotation(readAnnotation("Quality Gate")),
	), r.guard.Wrap(catalog.ToolQualityGate, r.handleQualityGate))

	s.AddTool(mcp.NewTool(catalog.ToolQualityGateStatus,
		mcp.WithDescription("Get the quality gate status of a project or analysis."),
		mcp.WithString("project_key",
			mcp.Description("Project to check"),
		),
		mcp.WithString("analysis_id",
			mcp.Description("Analysis to check instead of the project's current state"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch to check"),
		),
		mcp.WithString("pull_request",
			mcp.Description("Pull request to check"),
		),
		mcp.WithToolAnnotation(readAnnotation("Quality Gate Status")),
	), r.guard.Wrap(catalog.ToolQualityGateStatus, r.handleQualityGateStatus))
}

func (r *Registry) handleQualityGates(ctx context.Context, _ map[string]any) (any, error) {
	return r.client.ListQualityGates(ctx)
}

func (r *Registry) handleQualityGate(ctx context.Context, args map[string]any) (any, error) {
	name := stringArg(args, "name")
	if name == "" {
		return nil, errors.New("name is required")
	}
	return r.client.GetQualityGate(ctx, name)
}

func (r *Registry) handleQualityGateStatus(ctx context.Context, args map[string]any) (any, error) {
	q := upstream.GateStatusQuery{
		ProjectKey:  stringArg(args, "project_key"),
		AnalysisID:  stringArg(args, "analysis_id"),
		Branch:      stringArg(args, "branch"),
		PullRequest: stringArg(args, "pull_request"),
	}
	if q.ProjectKey == "" && q.AnalysisID == "" {
		return nil, errors.New("either project_key or analysis_id is required")
	}
	return r.client.ProjectQualityGateStatus(ctx, q)
}
