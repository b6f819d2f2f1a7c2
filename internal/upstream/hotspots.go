// ABOUTME: Security hotspot search, detail lookup, and status changes.

package upstream

import (
	"context"
	"net/url"
)

// Hotspot review statuses accepted by ChangeHotspotStatus.
const (
	HotspotStatusToReview = "TO_REVIEW"
	HotspotStatusReviewed = "REVIEWED"
)

// HotspotQuery holds the supported filters for hotspot search.
type HotspotQuery struct {
	ProjectKey string
	Files      []string
	Status     string
	Resolution string
	Page       int
	PageSize   int
}

// SearchHotspots returns the security hotspots matching the query.
func (c *Client) SearchHotspots(ctx context.Context, query HotspotQuery) (*HotspotSearchResult, error) {
	q := url.Values{}
	setString(q, "projectKey", query.ProjectKey)
	setCSV(q, "files", query.Files)
	setString(q, "status", query.Status)
	setString(q, "resolution", query.Resolution)
	setInt(q, "p", query.Page)
	setInt(q, "ps", query.PageSize)

	var result HotspotSearchResult
	if err := c.getJSON(ctx, "/api/hotspots/search", q, &result); err != nil {
		return nil, err
	}
	if result.Hotspots == nil {
		result.Hotspots = []Hotspot{}
	}
	return &result, nil
}

// GetHotspot returns the full detail of one hotspot.
func (c *Client) GetHotspot(ctx context.Context, key string) (*HotspotDetails, error) {
	q := url.Values{}
	q.Set("hotspot", key)

	var result HotspotDetails
	if err := c.getJSON(ctx, "/api/hotspots/show", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ChangeHotspotStatus moves a hotspot through its review workflow. The
// resolution is required when status is REVIEWED and ignored otherwise.
func (c *Client) ChangeHotspotStatus(ctx context.Context, key, status, resolution, comment string) error {
	form := url.Values{}
	form.Set("hotspot", key)
	form.Set("status", status)
	if resolution != "" {
		form.Set("resolution", resolution)
	}
	if comment != "" {
		form.Set("comment", comment)
	}

	return c.postForm(ctx, "/api/hotspots/change_status", form, nil)
}
