// ABOUTME: Tests for the tool catalog's read/write classification.
// ABOUTME: Unknown tool names must classify as reads, not writes.

package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWriteOperation(t *testing.T) {
	assert.True(t, IsWriteOperation(ToolAssignIssue))
	assert.True(t, IsWriteOperation(ToolMarkIssuesWontFix))
	assert.True(t, IsWriteOperation(ToolUpdateHotspotStatus))

	assert.False(t, IsWriteOperation(ToolIssues))
	assert.False(t, IsWriteOperation(ToolProjects))
	assert.False(t, IsWriteOperation(ToolSystemPing))
}

func TestIsWriteOperation_UnknownToolIsRead(t *testing.T) {
	// Tools missing from the catalog classify as reads, so a read-only
	// rule will not block them. New write tools must be registered here
	// or they slip through that gate.
	assert.False(t, IsWriteOperation("no_such_tool"))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(ToolIssues))
	assert.True(t, Known(ToolMarkIssueFalsePositive))
	assert.False(t, Known("no_such_tool"))
	assert.False(t, Known(""))
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, CategoryProjects, CategoryOf(ToolProjects))
	assert.Equal(t, CategoryIssues, CategoryOf(ToolIssues))
	assert.Equal(t, CategoryComponents, CategoryOf(ToolComponents))
	assert.Equal(t, CategoryHotspots, CategoryOf(ToolHotspots))

	// Single-item and scalar responses pass through unfiltered.
	assert.Equal(t, CategoryPassthrough, CategoryOf(ToolHotspot))
	assert.Equal(t, CategoryPassthrough, CategoryOf(ToolMetrics))

	assert.Equal(t, CategoryPassthrough, CategoryOf("no_such_tool"))
}

func TestNames(t *testing.T) {
	names := Names()

	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, ToolProjects)
	assert.Contains(t, names, ToolUpdateHotspotStatus)
	assert.Len(t, names, 28)
}
