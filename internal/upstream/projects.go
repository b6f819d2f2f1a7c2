// ABOUTME: Project and component search endpoints.
// ABOUTME: Maps the upstream "components" vocabulary onto gateway types.

package upstream

import (
	"context"
	"net/url"
)

// ProjectQuery holds the supported filters for project search.
type ProjectQuery struct {
	Query    string
	Page     int
	PageSize int
}

// SearchProjects returns the projects visible to the configured token.
func (c *Client) SearchProjects(ctx context.Context, query ProjectQuery) (*ProjectSearchResult, error) {
	q := url.Values{}
	setString(q, "q", query.Query)
	setInt(q, "p", query.Page)
	setInt(q, "ps", query.PageSize)

	// Upstream calls the project entries "components" at this endpoint.
	var raw struct {
		Paging     Paging    `json:"paging"`
		Components []Project `json:"components"`
	}
	if err := c.getJSON(ctx, "/api/projects/search", q, &raw); err != nil {
		return nil, err
	}

	projects := raw.Components
	if projects == nil {
		projects = []Project{}
	}
	return &ProjectSearchResult{Projects: projects, Paging: raw.Paging}, nil
}

// ComponentQuery holds the supported filters for component search.
type ComponentQuery struct {
	Query      string
	Qualifiers []string
	Language   string
	Page       int
	PageSize   int
}

// SearchComponents searches files, directories, and projects by name or key.
func (c *Client) SearchComponents(ctx context.Context, query ComponentQuery) (*ComponentSearchResult, error) {
	q := url.Values{}
	setString(q, "q", query.Query)
	setCSV(q, "qualifiers", query.Qualifiers)
	setString(q, "language", query.Language)
	setInt(q, "p", query.Page)
	setInt(q, "ps", query.PageSize)

	var result ComponentSearchResult
	if err := c.getJSON(ctx, "/api/components/search", q, &result); err != nil {
		return nil, err
	}
	if result.Components == nil {
		result.Components = []Component{}
	}
	return &result, nil
}
