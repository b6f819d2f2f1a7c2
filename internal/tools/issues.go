// ABOUTME: Issue search and issue workflow tools.
// ABOUTME: Transitions share one handler parameterized by transition name.

package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lintgate/lintgate/internal/catalog"
	"github.com/lintgate/lintgate/internal/guard"
	"github.com/lintgate/lintgate/internal/upstream"
)

// issueTransitionTool describes one single-issue workflow tool.
type issueTransitionTool struct {
	name       string
	title      string
	transition string
	desc       string
}

var issueTransitions = []issueTransitionTool{
	{catalog.ToolMarkIssueFalsePositive, "Mark Issue False Positive", upstream.TransitionFalsePositive,
		"Mark an issue as a false positive."},
	{catalog.ToolMarkIssueWontFix, "Mark Issue Won't Fix", upstream.TransitionWontFix,
		"Mark an issue as won't fix."},
	{catalog.ToolConfirmIssue, "Confirm Issue", upstream.TransitionConfirm,
		"Confirm that an issue is valid and needs fixing."},
	{catalog.ToolUnconfirmIssue, "Unconfirm Issue", upstream.TransitionUnconfirm,
		"Move a confirmed issue back to open."},
	{catalog.ToolResolveIssue, "Resolve Issue", upstream.TransitionResolve,
		"Mark an issue as fixed."},
	{catalog.ToolReopenIssue, "Reopen Issue", upstream.TransitionReopen,
		"Reopen a resolved issue."},
}

// bulkTransitionTool describes one multi-issue workflow tool.
type bulkTransitionTool struct {
	name       string
	title      string
	transition string
	desc       string
}

var bulkTransitions = []bulkTransitionTool{
	{catalog.ToolMarkIssuesFalsePositive, "Mark Issues False Positive", upstream.TransitionFalsePositive,
		"Mark several issues as false positives in one call."},
	{catalog.ToolMarkIssuesWontFix, "Mark Issues Won't Fix", upstream.TransitionWontFix,
		"Mark several issues as won't fix in one call."},
}

func (r *Registry) registerIssueTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(catalog.ToolIssues,
		mcp.WithDescription("Search issues. Results are filtered by the caller's severity ceiling, allowed statuses, and sensitive-data policy."),
		mcp.WithString("project_key",
			mcp.Description("Project to search in"),
		),
		mcp.WithArray("components",
			mcp.Description("Component keys to restrict the search to"),
		),
		mcp.WithArray("severities",
			mcp.Description("Severities to include: INFO, MINOR, MAJOR, CRITICAL, BLOCKER"),
		),
		mcp.WithArray("statuses",
			mcp.Description("Statuses to include: OPEN, CONFIRMED, REOPENED, RESOLVED, CLOSED"),
		),
		mcp.WithArray("resolutions",
			mcp.Description("Resolutions to include: FALSE-POSITIVE, WONTFIX, FIXED, REMOVED"),
		),
		mcp.WithBoolean("resolved",
			mcp.Description("Restrict to resolved or unresolved issues"),
		),
		mcp.WithArray("types",
			mcp.Description("Issue types: CODE_SMELL, BUG, VULNERABILITY"),
		),
		mcp.WithArray("rules",
			mcp.Description("Rule keys to include"),
		),
		mcp.WithArray("tags",
			mcp.Description("Issue tags to include"),
		),
		mcp.WithArray("assignees",
			mcp.Description("Assignee logins to include"),
		),
		mcp.WithArray("authors",
			mcp.Description("SCM author accounts to include"),
		),
		mcp.WithString("created_after",
			mcp.Description("Only issues created after this date (inclusive)"),
		),
		mcp.WithString("created_before",
			mcp.Description("Only issues created before this date (inclusive)"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch to search in"),
		),
		mcp.WithString("pull_request",
			mcp.Description("Pull request to search in"),
		),
		mcp.WithArray("additional_fields",
			mcp.Description("Extra response fields, e.g. comments, transitions"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page number"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Page size, up to 500"),
		),
		mcp.WithToolAnnotation(readAnnotation("Search Issues")),
	), r.guard.Wrap(catalog.ToolIssues, r.handleIssues))

	for _, tt := range issueTransitions {
		s.AddTool(mcp.NewTool(tt.name,
			mcp.WithDescription(tt.desc),
			mcp.WithString("issue_key",
				mcp.Required(),
				mcp.Description("Key of the issue"),
			),
			mcp.WithToolAnnotation(writeAnnotation(tt.title)),
		), r.guard.Wrap(tt.name, r.transitionHandler(tt.transition)))
	}

	for _, tt := range bulkTransitions {
		s.AddTool(mcp.NewTool(tt.name,
			mcp.WithDescription(tt.desc),
			mcp.WithArray("issue_keys",
				mcp.Required(),
				mcp.Description("Keys of the issues to transition"),
			),
			mcp.WithString("comment",
				mcp.Description("Comment to add alongside the transition"),
			),
			mcp.WithToolAnnotation(writeAnnotation(tt.title)),
		), r.guard.Wrap(tt.name, r.bulkTransitionHandler(tt.transition)))
	}

	s.AddTool(mcp.NewTool(catalog.ToolAddCommentToIssue,
		mcp.WithDescription("Add a comment to an issue."),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Key of the issue"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Comment text, markdown supported"),
		),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{
			Title:           "Comment on Issue",
			ReadOnlyHint:    boolPtr(false),
			DestructiveHint: boolPtr(false),
			IdempotentHint:  boolPtr(false),
			OpenWorldHint:   boolPtr(true),
		}),
	), r.guard.Wrap(catalog.ToolAddCommentToIssue, r.handleAddComment))

	s.AddTool(mcp.NewTool(catalog.ToolAssignIssue,
		mcp.WithDescription("Assign an issue to a user, or unassign it when no assignee is given."),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Key of the issue"),
		),
		mcp.WithString("assignee",
			mcp.Description("Login of the new assignee; omit to unassign"),
		),
		mcp.WithToolAnnotation(writeAnnotation("Assign Issue")),
	), r.guard.Wrap(catalog.ToolAssignIssue, r.handleAssignIssue))
}

func (r *Registry) handleIssues(ctx context.Context, args map[string]any) (any, error) {
	q := upstream.IssueQuery{
		Components:       stringListArg(args, "components"),
		Severities:       stringListArg(args, "severities"),
		Statuses:         stringListArg(args, "statuses"),
		Resolutions:      stringListArg(args, "resolutions"),
		Types:            stringListArg(args, "types"),
		Rules:            stringListArg(args, "rules"),
		Tags:             stringListArg(args, "tags"),
		Assignees:        stringListArg(args, "assignees"),
		Authors:          stringListArg(args, "authors"),
		CreatedAfter:     stringArg(args, "created_after"),
		CreatedBefore:    stringArg(args, "created_before"),
		Branch:           stringArg(args, "branch"),
		PullRequest:      stringArg(args, "pull_request"),
		AdditionalFields: stringListArg(args, "additional_fields"),
		Page:             intArg(args, "page"),
		PageSize:         intArg(args, "page_size"),
	}
	if key := stringArg(args, "project_key"); key != "" {
		q.Projects = []string{key}
	}
	if v, ok := boolArg(args, "resolved"); ok {
		q.Resolved = &v
	}
	return r.client.SearchIssues(ctx, q)
}

// transitionHandler builds the handler for one single-issue transition.
func (r *Registry) transitionHandler(transition string) guard.Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		key := stringArg(args, "issue_key")
		if key == "" {
			return nil, errors.New("issue_key is required")
		}
		return r.client.TransitionIssue(ctx, key, transition)
	}
}

// bulkTransitionHandler builds the handler for one bulk transition.
func (r *Registry) bulkTransitionHandler(transition string) guard.Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		keys := stringListArg(args, "issue_keys")
		if len(keys) == 0 {
			return nil, errors.New("issue_keys is required")
		}
		return r.client.BulkTransitionIssues(ctx, keys, transition, stringArg(args, "comment"))
	}
}

func (r *Registry) handleAddComment(ctx context.Context, args map[string]any) (any, error) {
	key := stringArg(args, "issue_key")
	if key == "" {
		return nil, errors.New("issue_key is required")
	}
	text := stringArg(args, "text")
	if text == "" {
		return nil, errors.New("text is required")
	}
	return r.client.AddIssueComment(ctx, key, text)
}

func (r *Registry) handleAssignIssue(ctx context.Context, args map[string]any) (any, error) {
	key := stringArg(args, "issue_key")
	if key == "" {
		return nil, errors.New("issue_key is required")
	}
	return r.client.AssignIssue(ctx, key, stringArg(args, "assignee"))
}
