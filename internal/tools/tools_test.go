// ABOUTME: Handler tests against a stubbed upstream HTTP server.
// ABOUTME: The guard is exercised elsewhere; handlers are invoked directly.

package tools

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintgate/lintgate/internal/guard"
	"github.com/lintgate/lintgate/internal/upstream"
)

func testRegistry(t *testing.T, h http.Handler) *Registry {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := upstream.NewClient(upstream.Config{URL: srv.URL, Token: "test-token"}, logger)
	require.NoError(t, err)

	return NewRegistry(client, guard.New(nil, false, logger), logger)
}

func TestHandleProjects(t *testing.T) {
	reg := testRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects/search", r.URL.Path)
		assert.Equal(t, "billing", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("p"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"paging":{"pageIndex":2,"pageSize":50,"total":2},
			"components":[{"key":"alpha","name":"Alpha"},{"key":"beta","name":"Beta"}]}`)
	}))

	res, err := reg.handleProjects(context.Background(), map[string]any{
		"query": "billing",
		"page":  float64(2),
	})
	require.NoError(t, err)

	result, ok := res.(*upstream.ProjectSearchResult)
	require.True(t, ok)
	require.Len(t, result.Projects, 2)
	assert.Equal(t, "alpha", result.Projects[0].Key)
	assert.Equal(t, 2, result.Paging.Total)
}

func TestHandleIssues_QueryMapping(t *testing.T) {
	var got map[string]string
	reg := testRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/issues/search", r.URL.Path)
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"paging":{"pageIndex":1,"pageSize":100,"total":0},"issues":[]}`)
	}))

	_, err := reg.handleIssues(context.Background(), map[string]any{
		"project_key": "billing",
		"severities":  []any{"MAJOR", "CRITICAL"},
		"statuses":    "OPEN,CONFIRMED",
		"resolved":    false,
		"branch":      "main",
		"page_size":   float64(25),
	})
	require.NoError(t, err)

	assert.Equal(t, "billing", got["projects"])
	assert.Equal(t, "MAJOR,CRITICAL", got["severities"])
	assert.Equal(t, "OPEN,CONFIRMED", got["statuses"])
	assert.Equal(t, "false", got["resolved"])
	assert.Equal(t, "main", got["branch"])
	assert.Equal(t, "25", got["ps"])
}

func TestTransitionHandler(t *testing.T) {
	reg := testRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/issues/do_transition", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ISSUE-7", r.Form.Get("issue"))
		assert.Equal(t, "falsepositive", r.Form.Get("transition"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"issue":{"key":"ISSUE-7","status":"RESOLVED","resolution":"FALSE-POSITIVE"}}`)
	}))

	handler := reg.transitionHandler(upstream.TransitionFalsePositive)
	res, err := handler(context.Background(), map[string]any{"issue_key": "ISSUE-7"})
	require.NoError(t, err)

	issue, ok := res.(*upstream.Issue)
	require.True(t, ok)
	assert.Equal(t, "RESOLVED", issue.Status)
	assert.Equal(t, "FALSE-POSITIVE", issue.Resolution)
}

func TestTransitionHandler_RequiresIssueKey(t *testing.T) {
	reg := testRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called")
	}))

	handler := reg.transitionHandler(upstream.TransitionWontFix)
	_, err := handler(context.Background(), map[string]any{})
	require.EqualError(t, err, "issue_key is required")
}

func TestBulkTransitionHandler(t *testing.T) {
	reg := testRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/issues/bulk_change", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "I-1,I-2", r.Form.Get("issues"))
		assert.Equal(t, "wontfix", r.Form.Get("do_transition"))
		assert.Equal(t, "out of scope", r.Form.Get("comment"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"total":2,"success":2,"ignored":0,"failures":0}`)
	}))

	handler := reg.bulkTransitionHandler(upstream.TransitionWontFix)
	res, err := handler(context.Background(), map[string]any{
		"issue_keys": []any{"I-1", "I-2"},
		"comment":    "out of scope",
	})
	require.NoError(t, err)

	result, ok := res.(*upstream.BulkChangeResult)
	require.True(t, ok)
	assert.Equal(t, 2, result.Success)
}

func TestHandleSourceCode_ReturnsRawText(t *testing.T) {
	const source = "package main\n\nfunc main() {}\n"
	reg := testRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "proj:cmd/main.go", r.URL.Query().Get("key"))
		io.WriteString(w, source)
	}))

	res, err := reg.handleSourceCode(context.Background(), map[string]any{"component": "proj:cmd/main.go"})
	require.NoError(t, err)
	assert.Equal(t, source, res)
}

func TestHandleUpdateHotspotStatus(t *testing.T) {
	reg := testRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/hotspots/change_status", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "HS-1", r.Form.Get("hotspot"))
		assert.Equal(t, "REVIEWED", r.Form.Get("status"))
		assert.Equal(t, "SAFE", r.Form.Get("resolution"))
		w.WriteHeader(http.StatusNoContent)
	}))

	res, err := reg.handleUpdateHotspotStatus(context.Background(), map[string]any{
		"hotspot_key": "HS-1",
		"status":      "REVIEWED",
		"resolution":  "SAFE",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hotspot HS-1 is now REVIEWED", res)
}

func TestHandleUpdateHotspotStatus_RejectsUnknownStatus(t *testing.T) {
	reg := testRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called")
	}))

	_, err := reg.handleUpdateHotspotStatus(context.Background(), map[string]any{
		"hotspot_key": "HS-1",
		"status":      "CLOSED",
	})
	require.EqualError(t, err, "status must be TO_REVIEW or REVIEWED")
}

func TestHandleQualityGateStatus_RequiresTarget(t *testing.T) {
	reg := testRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called")
	}))

	_, err := reg.handleQualityGateStatus(context.Background(), map[string]any{})
	require.EqualError(t, err, "either project_key or analysis_id is required")
}

func TestHandleSystemPing(t *testing.T) {
	reg := testRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/system/ping", r.URL.Path)
		io.WriteString(w, "pong")
	}))

	res, err := reg.handleSystemPing(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", res)
}

func TestRegisterAll(t *testing.T) {
	reg := testRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	s := server.NewMCPServer("lintgate-test", "0.0.0", server.WithToolCapabilities(false))
	reg.RegisterAll(s)
}
