// ABOUTME: Issue search, workflow transitions, comments, and assignment.
// ABOUTME: Write calls use the upstream form-POST endpoints.

package upstream

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Issue workflow transitions accepted by TransitionIssue.
const (
	TransitionFalsePositive = "falsepositive"
	TransitionWontFix       = "wontfix"
	TransitionConfirm       = "confirm"
	TransitionUnconfirm     = "unconfirm"
	TransitionResolve       = "resolve"
	TransitionReopen        = "reopen"
)

// IssueQuery holds the supported filters for issue search.
type IssueQuery struct {
	Projects         []string
	Components       []string
	Severities       []string
	Statuses         []string
	Resolutions      []string
	Resolved         *bool
	Types            []string
	Rules            []string
	Tags             []string
	Assignees        []string
	Authors          []string
	CreatedAfter     string
	CreatedBefore    string
	Branch           string
	PullRequest      string
	AdditionalFields []string
	Page             int
	PageSize         int
}

// SearchIssues returns the issues matching the query.
func (c *Client) SearchIssues(ctx context.Context, query IssueQuery) (*IssueSearchResult, error) {
	q := url.Values{}
	setCSV(q, "projects", query.Projects)
	setCSV(q, "components", query.Components)
	setCSV(q, "severities", query.Severities)
	setCSV(q, "statuses", query.Statuses)
	setCSV(q, "resolutions", query.Resolutions)
	setCSV(q, "types", query.Types)
	setCSV(q, "rules", query.Rules)
	setCSV(q, "tags", query.Tags)
	setCSV(q, "assignees", query.Assignees)
	setCSV(q, "author", query.Authors)
	setCSV(q, "additionalFields", query.AdditionalFields)
	setString(q, "createdAfter", query.CreatedAfter)
	setString(q, "createdBefore", query.CreatedBefore)
	setString(q, "branch", query.Branch)
	setString(q, "pullRequest", query.PullRequest)
	setInt(q, "p", query.Page)
	setInt(q, "ps", query.PageSize)
	if query.Resolved != nil {
		q.Set("resolved", strconv.FormatBool(*query.Resolved))
	}

	var result IssueSearchResult
	if err := c.getJSON(ctx, "/api/issues/search", q, &result); err != nil {
		return nil, err
	}
	if result.Issues == nil {
		result.Issues = []Issue{}
	}
	return &result, nil
}

// TransitionIssue applies a workflow transition to a single issue and
// returns the updated issue.
func (c *Client) TransitionIssue(ctx context.Context, issueKey, transition string) (*Issue, error) {
	form := url.Values{}
	form.Set("issue", issueKey)
	form.Set("transition", transition)

	var raw struct {
		Issue Issue `json:"issue"`
	}
	if err := c.postForm(ctx, "/api/issues/do_transition", form, &raw); err != nil {
		return nil, err
	}
	return &raw.Issue, nil
}

// BulkTransitionIssues applies one workflow transition to many issues in a
// single upstream call. An optional comment is attached to every issue.
func (c *Client) BulkTransitionIssues(ctx context.Context, issueKeys []string, transition, comment string) (*BulkChangeResult, error) {
	form := url.Values{}
	form.Set("issues", strings.Join(issueKeys, ","))
	form.Set("do_transition", transition)
	if comment != "" {
		form.Set("comment", comment)
	}

	var result BulkChangeResult
	if err := c.postForm(ctx, "/api/issues/bulk_change", form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddIssueComment attaches a markdown comment to an issue and returns the
// updated issue.
func (c *Client) AddIssueComment(ctx context.Context, issueKey, text string) (*Issue, error) {
	form := url.Values{}
	form.Set("issue", issueKey)
	form.Set("text", text)

	var raw struct {
		Issue Issue `json:"issue"`
	}
	if err := c.postForm(ctx, "/api/issues/add_comment", form, &raw); err != nil {
		return nil, err
	}
	return &raw.Issue, nil
}

// AssignIssue assigns an issue to a user. An empty assignee removes the
// current assignment.
func (c *Client) AssignIssue(ctx context.Context, issueKey, assignee string) (*Issue, error) {
	form := url.Values{}
	form.Set("issue", issueKey)
	if assignee != "" {
		form.Set("assignee", assignee)
	}

	var raw struct {
		Issue Issue `json:"issue"`
	}
	if err := c.postForm(ctx, "/api/issues/assign", form, &raw); err != nil {
		return nil, err
	}
	return &raw.Issue, nil
}
