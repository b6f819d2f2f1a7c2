// ABOUTME: Metric definitions and component measure endpoints.
// ABOUTME: Covers current values, multi-component search, and history.

package upstream

import (
	"context"
	"net/url"
)

// SearchMetrics returns the metric definitions known to the upstream.
func (c *Client) SearchMetrics(ctx context.Context, page, pageSize int) (*MetricsResult, error) {
	q := url.Values{}
	setInt(q, "p", page)
	setInt(q, "ps", pageSize)

	var result MetricsResult
	if err := c.getJSON(ctx, "/api/metrics/search", q, &result); err != nil {
		return nil, err
	}
	if result.Metrics == nil {
		result.Metrics = []Metric{}
	}
	return &result, nil
}

// MeasuresQuery holds the parameters for a single-component measures request.
type MeasuresQuery struct {
	Component        string
	Metrics          []string
	Branch           string
	PullRequest      string
	AdditionalFields []string
}

// ComponentMeasures returns the requested metric values for one component.
func (c *Client) ComponentMeasures(ctx context.Context, query MeasuresQuery) (*ComponentMeasuresResult, error) {
	q := url.Values{}
	q.Set("component", query.Component)
	setCSV(q, "metricKeys", query.Metrics)
	setString(q, "branch", query.Branch)
	setString(q, "pullRequest", query.PullRequest)
	setCSV(q, "additionalFields", query.AdditionalFields)

	var result ComponentMeasuresResult
	if err := c.getJSON(ctx, "/api/measures/component", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchMeasures returns metric values across several projects at once.
func (c *Client) SearchMeasures(ctx context.Context, projectKeys, metrics []string) (*MeasuresSearchResult, error) {
	q := url.Values{}
	setCSV(q, "projectKeys", projectKeys)
	setCSV(q, "metricKeys", metrics)

	var result MeasuresSearchResult
	if err := c.getJSON(ctx, "/api/measures/search", q, &result); err != nil {
		return nil, err
	}
	if result.Measures == nil {
		result.Measures = []Measure{}
	}
	return &result, nil
}

// HistoryQuery holds the parameters for a measure-history request.
type HistoryQuery struct {
	Component string
	Metrics   []string
	From      string
	To        string
	Branch    string
	Page      int
	PageSize  int
}

// MeasuresHistory returns dated metric values for a component.
func (c *Client) MeasuresHistory(ctx context.Context, query HistoryQuery) (*MeasuresHistoryResult, error) {
	q := url.Values{}
	q.Set("component", query.Component)
	setCSV(q, "metrics", query.Metrics)
	setString(q, "from", query.From)
	setString(q, "to", query.To)
	setString(q, "branch", query.Branch)
	setInt(q, "p", query.Page)
	setInt(q, "ps", query.PageSize)

	var result MeasuresHistoryResult
	if err := c.getJSON(ctx, "/api/measures/search_history", q, &result); err != nil {
		return nil, err
	}
	if result.Measures == nil {
		result.Measures = []MeasureHistory{}
	}
	return &result, nil
}
