// Package upstream provides a typed HTTP client for Sonar-compatible
// code-quality platform REST APIs.
//
// # Overview
//
// The client covers the read and write surface the gateway exposes as tools:
//
//   - Projects and components: search and listing
//   - Issues: faceted search, workflow transitions, comments, assignment
//   - Measures: current values, multi-component search, history, metric defs
//   - Quality gates: definitions and per-project status
//   - Sources: raw file content and SCM blame
//   - Security hotspots: search, detail, status changes
//   - System: health, status, ping
//
// All calls authenticate with a bearer token and accept an optional
// organization key appended to every request. Responses are decoded into the
// types in types.go; non-2xx responses become *APIError values, with
// ErrUnauthorized and ErrNotFound wrapped for the common cases.
//
// # Usage
//
//	client, err := upstream.NewClient(upstream.Config{
//		URL:   "https://quality.example.com",
//		Token: token,
//	}, logger)
//	result, err := client.SearchIssues(ctx, upstream.IssueQuery{
//		Projects:   []string{"my-project"},
//		Severities: []string{"CRITICAL", "BLOCKER"},
//	})
package upstream
