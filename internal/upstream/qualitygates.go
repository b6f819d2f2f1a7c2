// ABOUTME: Quality gate definitions and per-project gate status.

package upstream

import (
	"context"
	"net/url"
)

// ListQualityGates returns all configured quality gates.
func (c *Client) ListQualityGates(ctx context.Context) (*QualityGatesResult, error) {
	var result QualityGatesResult
	if err := c.getJSON(ctx, "/api/qualitygates/list", nil, &result); err != nil {
		return nil, err
	}
	if result.QualityGates == nil {
		result.QualityGates = []QualityGate{}
	}
	return &result, nil
}

// GetQualityGate returns one quality gate with its conditions.
func (c *Client) GetQualityGate(ctx context.Context, name string) (*QualityGate, error) {
	q := url.Values{}
	q.Set("name", name)

	var result QualityGate
	if err := c.getJSON(ctx, "/api/qualitygates/show", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GateStatusQuery identifies the analysis whose gate status is requested.
type GateStatusQuery struct {
	ProjectKey  string
	AnalysisID  string
	Branch      string
	PullRequest string
}

// ProjectQualityGateStatus returns the evaluated quality gate state of a
// project's most recent analysis.
func (c *Client) ProjectQualityGateStatus(ctx context.Context, query GateStatusQuery) (*QualityGateStatus, error) {
	q := url.Values{}
	setString(q, "projectKey", query.ProjectKey)
	setString(q, "analysisId", query.AnalysisID)
	setString(q, "branch", query.Branch)
	setString(q, "pullRequest", query.PullRequest)

	var raw struct {
		ProjectStatus QualityGateStatus `json:"projectStatus"`
	}
	if err := c.getJSON(ctx, "/api/qualitygates/project_status", q, &raw); err != nil {
		return nil, err
	}
	return &raw.ProjectStatus, nil
}
