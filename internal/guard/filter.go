// ABOUTME: Response filtering applied after a guarded handler returns.
// ABOUTME: The tool's catalog category selects the filter; default is passthrough.

package guard

import (
	"github.com/lintgate/lintgate/internal/catalog"
	"github.com/lintgate/lintgate/internal/permission"
	"github.com/lintgate/lintgate/internal/upstream"
)

// filterResponse applies the category filter for the tool to the
// handler's response. Unrecognized payload shapes pass through untouched;
// the category decides the filter, not the runtime type.
func (g *Guard) filterResponse(user *permission.UserContext, tool string, out any) any {
	switch catalog.CategoryOf(tool) {
	case catalog.CategoryProjects:
		if res, ok := out.(*upstream.ProjectSearchResult); ok {
			res.Projects = g.svc.FilterProjects(user, res.Projects)
		}
	case catalog.CategoryIssues:
		if res, ok := out.(*upstream.IssueSearchResult); ok {
			res.Issues = g.svc.FilterIssues(user, res.Issues)
		}
	case catalog.CategoryComponents:
		if res, ok := out.(*upstream.ComponentSearchResult); ok {
			res.Components = g.filterComponents(user, res.Components)
		}
	case catalog.CategoryHotspots:
		if res, ok := out.(*upstream.HotspotSearchResult); ok {
			res.Hotspots = g.filterHotspots(user, res.Hotspots)
		}
	}
	return out
}

// filterComponents keeps components whose project the user may access.
// Components without a key cannot be attributed to a project and are
// dropped.
func (g *Guard) filterComponents(user *permission.UserContext, components []upstream.Component) []upstream.Component {
	attributed := make([]upstream.Component, 0, len(components))
	for _, c := range components {
		if c.Key == "" {
			g.logger.Debug("dropping component without key")
			continue
		}
		attributed = append(attributed, c)
	}

	return permission.FilterByAccess(attributed, func(c upstream.Component) string {
		return permission.ExtractProjectKey(c.Key)
	}, g.svc.ApplicableRule(user))
}

// filterHotspots keeps hotspots whose project the user may access.
// Hotspots whose project cannot be resolved are dropped.
func (g *Guard) filterHotspots(user *permission.UserContext, hotspots []upstream.Hotspot) []upstream.Hotspot {
	attributed := make([]upstream.Hotspot, 0, len(hotspots))
	for _, h := range hotspots {
		if h.Project.Key == "" {
			g.logger.Debug("dropping hotspot without resolvable project", "hotspot", h.Key)
			continue
		}
		attributed = append(attributed, h)
	}

	return permission.FilterByAccess(attributed, func(h upstream.Hotspot) string {
		return h.Project.Key
	}, g.svc.ApplicableRule(user))
}
