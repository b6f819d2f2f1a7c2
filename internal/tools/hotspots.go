// ABOUTME: Security hotspot search, detail, and review-status tools.

package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lintgate/lintgate/internal/catalog"
	"github.com/lintgate/lintgate/internal/upstream"
)

func (r *Registry) registerHotspotTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(catalog.ToolHotspots,
		mcp.WithDescription("Search security hotspots in a project."),
		mcp.WithString("project_key",
			mcp.Description("Project to search in"),
		),
		mcp.WithArray("files",
			mcp.Description("File paths to restrict the search to"),
		),
		mcp.WithString("status",
			mcp.Description("Review status to filter by"),
			mcp.Enum(upstream.HotspotStatusToReview, upstream.HotspotStatusReviewed),
		),
		mcp.WithString("resolution",
			mcp.Description("Resolution to filter by: FIXED, SAFE, ACKNOWLEDGED"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page number"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Page size, up to 500"),
		),
		mcp.WithToolAnnotation(readAnnotation("Search Hotspots")),
	), r.guard.Wrap(catalog.ToolHotspots, r.handleHotspots))

	s.AddTool(mcp.NewTool(catalog.ToolHotspot,
		mcp.WithDescription("Get the details of a security hotspot, including its rule description."),
		mcp.WithString("hotspot_key",
			mcp.Required(),
			mcp.Description("Key of the hotspot"),
		),
		mcp.WithToolAnnotation(readAnnotation("Hotspot Details")),
	), r.guard.Wrap(catalog.ToolHotspot, r.handleHotspot))

	s.AddTool(mcp.NewTool(catalog.ToolUpdateHotspotStatus,
		mcp.WithDescription("Change the review status of a security hotspot."),
		mcp.WithString("hotspot_key",
			mcp.Required(),
			mcp.Description("Key of the hotspot"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New review status"),
			mcp.Enum(upstream.HotspotStatusToReview, upstream.HotspotStatusReviewed),
		),
		mcp.WithString("resolution",
			mcp.Description("Resolution when status is REVIEWED: FIXED, SAFE, ACKNOWLEDGED"),
		),
		mcp.WithString("comment",
			mcp.Description("Comment explaining the status change"),
		),
		mcp.WithToolAnnotation(writeAnnotation("Update Hotspot Status")),
	), r.guard.Wrap(catalog.ToolUpdateHotspotStatus, r.handleUpdateHotspotStatus))
}

func (r *Registry) handleHotspots(ctx context.Context, args map[string]any) (any, error) {
	return r.client.SearchHotspots(ctx, upstream.HotspotQuery{
		ProjectKey: stringArg(args, "project_key"),
		Files:      stringListArg(args, "files"),
		Status:     stringArg(args, "status"),
		Resolution: stringArg(args, "resolution"),
		Page:       intArg(args, "page"),
		PageSize:   intArg(args, "page_size"),
	})
}

func (r *Registry) handleHotspot(ctx context.Context, args map[string]any) (any, error) {
	key := stringArg(args, "hotspot_key")
	if key == "" {
		return nil, errors.New("hotspot_key is required")
	}
	return r.client.GetHotspot(ctx, key)
}

func (r *Registry) handleUpdateHotspotStatus(ctx context.Context, args map[string]any) (any, error) {
	key := stringArg(args, "hotspot_key")
	if key == "" {
		return nil, errors.New("hotspot_key is required")
	}
	status := stringArg(args, "status")
	if status != upstream.HotspotStatusToReview && status != upstream.HotspotStatusReviewed {
		return nil, fmt.Errorf("status must be %s or %s", upstream.HotspotStatusToReview, upstream.HotspotStatusReviewed)
	}
	err := r.client.ChangeHotspotStatus(ctx, key, status, stringArg(args, "resolution"), stringArg(args, "comment"))
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Hotspot %s is now %s", key, status), nil
}
