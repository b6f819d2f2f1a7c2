// ABOUTME: Metric definition and measure tools, including measure history.

package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lintgate/lintgate/internal/catalog"
	"github.com/lintgate/lintgate/internal/upstream"
)

func (r *Registry) registerMeasureTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(catalog.ToolMetrics,
		mcp.WithDescription("List the metric definitions the platform knows about."),
		mcp.WithNumber("page",
			mcp.Description("1-based page number"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Page size, up to 500"),
		),
		mcp.WithToolAnnotation(readAnnotation("List Metrics")),
	), r.guard.Wrap(catalog.ToolMetrics, r.handleMetrics))

	s.AddTool(mcp.NewTool(catalog.ToolMeasuresComponent,
		mcp.WithDescription("Get measures for a single component."),
		mcp.WithString("component",
			mcp.Required(),
			mcp.Description("Component key"),
		),
		mcp.WithArray("metric_keys",
			mcp.Required(),
			mcp.Description("Metric keys to fetch, e.g. coverage, bugs"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch to read measures from"),
		),
		mcp.WithString("pull_request",
			mcp.Description("Pull request to read measures from"),
		),
		mcp.WithArray("additional_fields",
			mcp.Description("Extra response fields, e.g. metrics, period"),
		),
		mcp.WithToolAnnotation(readAnnotation("Component Measures")),
	), r.guard.Wrap(catalog.ToolMeasuresComponent, r.handleComponentMeasures))

	s.AddTool(mcp.NewTool(catalog.ToolMeasuresComponents,
		mcp.WithDescription("Get measures for several components in one call."),
		mcp.WithArray("component_keys",
			mcp.Required(),
			mcp.Description("Component keys to fetch measures for"),
		),
		mcp.WithArray("metric_keys",
			mcp.Required(),
			mcp.Description("Metric keys to fetch"),
		),
		mcp.WithToolAnnotation(readAnnotation("Components Measures")),
	), r.guard.Wrap(catalog.ToolMeasuresComponents, r.handleSearchMeasures))

	s.AddTool(mcp.NewTool(catalog.ToolMeasuresHistory,
		mcp.WithDescription("Get the history of measures for a component."),
		mcp.WithString("component",
			mcp.Required(),
			mcp.Description("Component key"),
		),
		mcp.WithArray("metrics",
			mcp.Description("Metric keys to include in the history"),
		),
		mcp.WithString("from",
			mcp.Description("Start of the history window (inclusive)"),
		),
		mcp.WithString("to",
			mcp.Description("End of the history window (inclusive)"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch to read history from"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page number"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Page size, up to 500"),
		),
		mcp.WithToolAnnotation(readAnnotation("Measures History")),
	), r.guard.Wrap(catalog.ToolMeasuresHistory, r.handleMeasuresHistory))
}

func (r *Registry) handleMetrics(ctx context.Context, args map[string]any) (any, error) {
	return r.client.SearchMetrics(ctx, intArg(args, "page"), intArg(args, "page_size"))
}

func (r *Registry) handleComponentMeasures(ctx context.Context, args map[string]any) (any, error) {
	component := stringArg(args, "component")
	if component == "" {
		return nil, errors.New("component is required")
	}
	metrics := stringListArg(args, "metric_keys")
	if len(metrics) == 0 {
		return nil, errors.New("metric_keys is required")
	}
	return r.client.ComponentMeasures(ctx, upstream.MeasuresQuery{
		Component:        component,
		Metrics:          metrics,
		Branch:           stringArg(args, "branch"),
		PullRequest:      stringArg(args, "pull_request"),
		AdditionalFields: stringListArg(args, "additional_fields"),
	})
}

func (r *Registry) handleSearchMeasures(ctx context.Context, args map[string]any) (any, error) {
	keys := stringListArg(args, "component_keys")
	if len(keys) == 0 {
		return nil, errors.New("component_keys is required")
	}
	metrics := stringListArg(args, "metric_keys")
	if len(metrics) == 0 {
		return nil, errors.New("metric_keys is required")
	}
	return r.client.SearchMeasures(ctx, keys, metrics)
}

func (r *Registry) handleMeasuresHistory(ctx context.Context, args map[string]any) (any, error) {
	component := stringArg(args, "component")
	if component == "" {
		return nil, errors.New("component is required")
	}
	return r.client.MeasuresHistory(ctx, upstream.HistoryQuery{
		Component: component,
		Metrics:   stringListArg(args, "metrics"),
		From:      stringArg(args, "from"),
		To:        stringArg(args, "to"),
		Branch:    stringArg(args, "branch"),
		Page:      intArg(args, "page"),
		PageSize:  intArg(args, "page_size"),
	})
}
