// ABOUTME: Tests for the rule model: enums, allow-lists, and group matching.
// ABOUTME: Covers severity ordering, status parsing, and wildcard rules.

package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"INFO", SeverityInfo},
		{"MINOR", SeverityMinor},
		{"MAJOR", SeverityMajor},
		{"CRITICAL", SeverityCritical},
		{"BLOCKER", SeverityBlocker},
		{"blocker", SeverityBlocker}, // case-insensitive
		{" major ", SeverityMajor},   // surrounding whitespace ignored
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseSeverity_Unknown(t *testing.T) {
	_, err := ParseSeverity("SEVERE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEVERE")
}

func TestSeverity_Ordering(t *testing.T) {
	// The ordinal order drives the max-severity issue filter.
	assert.Less(t, SeverityInfo, SeverityMinor)
	assert.Less(t, SeverityMinor, SeverityMajor)
	assert.Less(t, SeverityMajor, SeverityCritical)
	assert.Less(t, SeverityCritical, SeverityBlocker)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "INFO", SeverityInfo.String())
	assert.Equal(t, "BLOCKER", SeverityBlocker.String())
	assert.Equal(t, "Severity(9)", Severity(9).String())
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("open")
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, got)

	got, err = ParseStatus("TO_REVIEW")
	require.NoError(t, err)
	assert.Equal(t, StatusToReview, got)

	_, err = ParseStatus("PENDING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PENDING")
}

func TestRule_HasTool(t *testing.T) {
	r := &Rule{AllowedTools: []string{"projects", "issues"}}

	assert.True(t, r.HasTool("issues"))
	assert.False(t, r.HasTool("hotspots"))
	assert.False(t, (&Rule{}).HasTool("projects"), "empty allow-list grants nothing")
}

func TestRule_DeniesTool(t *testing.T) {
	r := &Rule{DeniedTools: []string{"assignIssue"}}

	assert.True(t, r.DeniesTool("assignIssue"))
	assert.False(t, r.DeniesTool("issues"))
}

func TestRule_AllowsStatus(t *testing.T) {
	// An empty allow-list admits every status.
	unrestricted := &Rule{}
	assert.True(t, unrestricted.AllowsStatus("OPEN"))
	assert.True(t, unrestricted.AllowsStatus("REVIEWED"))

	r := &Rule{AllowedStatuses: []Status{StatusOpen, StatusConfirmed}}
	assert.True(t, r.AllowsStatus("OPEN"))
	assert.True(t, r.AllowsStatus("confirmed"), "wire casing varies")
	assert.False(t, r.AllowsStatus("CLOSED"))
}

func TestRule_AppliesTo(t *testing.T) {
	wildcard := &Rule{}
	assert.True(t, wildcard.appliesTo(nil), "empty groups list applies to everyone")
	assert.True(t, wildcard.appliesTo([]string{"dev"}))

	scoped := &Rule{Groups: []string{"dev", "qa"}}
	assert.True(t, scoped.appliesTo([]string{"qa"}))
	assert.True(t, scoped.appliesTo([]string{"ops", "dev"}))
	assert.False(t, scoped.appliesTo([]string{"ops"}))
	assert.False(t, scoped.appliesTo(nil))
}
