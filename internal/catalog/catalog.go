// ABOUTME: Static catalog of every MCP tool the gateway exposes.
// ABOUTME: Classifies tools as read or write and tags their response shape.

// Package catalog is the single source of truth for tool names, their
// read/write classification, and the response category the permission
// layer filters by. The classification is decided here, at registration
// time, not guessed from response shapes at runtime.
package catalog

import "sort"

// Tool names as registered with the MCP server.
const (
	ToolProjects           = "projects"
	ToolComponents         = "components"
	ToolMetrics            = "metrics"
	ToolIssues             = "issues"
	ToolMeasuresComponent  = "measures_component"
	ToolMeasuresComponents = "measures_components"
	ToolMeasuresHistory    = "measures_history"
	ToolQualityGates       = "quality_gates"
	ToolQualityGate        = "quality_gate"
	ToolQualityGateStatus  = "quality_gate_status"
	ToolSourceCode         = "source_code"
	ToolScmBlame           = "scm_blame"
	ToolHotspots           = "hotspots"
	ToolHotspot            = "hotspot"
	ToolSystemHealth       = "system_health"
	ToolSystemStatus       = "system_status"
	ToolSystemPing         = "system_ping"

	ToolMarkIssueFalsePositive  = "markIssueFalsePositive"
	ToolMarkIssueWontFix        = "markIssueWontFix"
	ToolMarkIssuesFalsePositive = "markIssuesFalsePositive"
	ToolMarkIssuesWontFix       = "markIssuesWontFix"
	ToolAddCommentToIssue       = "addCommentToIssue"
	ToolAssignIssue             = "assignIssue"
	ToolConfirmIssue            = "confirmIssue"
	ToolUnconfirmIssue          = "unconfirmIssue"
	ToolResolveIssue            = "resolveIssue"
	ToolReopenIssue             = "reopenIssue"
	ToolUpdateHotspotStatus     = "update_hotspot_status"
)

// Operation says whether a tool mutates upstream state.
type Operation int

const (
	OpRead Operation = iota
	OpWrite
)

// Category tags the response shape a tool returns so the permission
// layer knows which filter to apply. Passthrough responses are returned
// unfiltered once tool and project access have been checked.
type Category int

const (
	CategoryPassthrough Category = iota
	CategoryProjects
	CategoryIssues
	CategoryComponents
	CategoryHotspots
)

// Entry describes one registered tool.
type Entry struct {
	Name     string
	Op       Operation
	Category Category
}

var tools = map[string]Entry{
	ToolProjects:           {Name: ToolProjects, Op: OpRead, Category: CategoryProjects},
	ToolComponents:         {Name: ToolComponents, Op: OpRead, Category: CategoryComponents},
	ToolMetrics:            {Name: ToolMetrics, Op: OpRead, Category: CategoryPassthrough},
	ToolIssues:             {Name: ToolIssues, Op: OpRead, Category: CategoryIssues},
	ToolMeasuresComponent:  {Name: ToolMeasuresComponent, Op: OpRead, Category: CategoryPassthrough},
	ToolMeasuresComponents: {Name: ToolMeasuresComponents, Op: OpRead, Category: CategoryPassthrough},
	ToolMeasuresHistory:    {Name: ToolMeasuresHistory, Op: OpRead, Category: CategoryPassthrough},
	ToolQualityGates:       {Name: ToolQualityGates, Op: OpRead, Category: CategoryPassthrough},
	ToolQualityGate:        {Name: ToolQualityGate, Op: OpRead, Category: CategoryPassthrough},
	ToolQualityGateStatus:  {Name: ToolQualityGateStatus, Op: OpRead, Category: CategoryPassthrough},
	ToolSourceCode:         {Name: ToolSourceCode, Op: OpRead, Category: CategoryPassthrough},
	ToolScmBlame:           {Name: ToolScmBlame, Op: OpRead, Category: CategoryPassthrough},
	ToolHotspots:           {Name: ToolHotspots, Op: OpRead, Category: CategoryHotspots},
	ToolHotspot:            {Name: ToolHotspot, Op: OpRead, Category: CategoryPassthrough},
	ToolSystemHealth:       {Name: ToolSystemHealth, Op: OpRead, Category: CategoryPassthrough},
	ToolSystemStatus:       {Name: ToolSystemStatus, Op: OpRead, Category: CategoryPassthrough},
	ToolSystemPing:         {Name: ToolSystemPing, Op: OpRead, Category: CategoryPassthrough},

	ToolMarkIssueFalsePositive:  {Name: ToolMarkIssueFalsePositive, Op: OpWrite, Category: CategoryPassthrough},
	ToolMarkIssueWontFix:        {Name: ToolMarkIssueWontFix, Op: OpWrite, Category: CategoryPassthrough},
	ToolMarkIssuesFalsePositive: {Name: ToolMarkIssuesFalsePositive, Op: OpWrite, Category: CategoryPassthrough},
	ToolMarkIssuesWontFix:       {Name: ToolMarkIssuesWontFix, Op: OpWrite, Category: CategoryPassthrough},
	ToolAddCommentToIssue:       {Name: ToolAddCommentToIssue, Op: OpWrite, Category: CategoryPassthrough},
	ToolAssignIssue:             {Name: ToolAssignIssue, Op: OpWrite, Category: CategoryPassthrough},
	ToolConfirmIssue:            {Name: ToolConfirmIssue, Op: OpWrite, Category: CategoryPassthrough},
	ToolUnconfirmIssue:          {Name: ToolUnconfirmIssue, Op: OpWrite, Category: CategoryPassthrough},
	ToolResolveIssue:            {Name: ToolResolveIssue, Op: OpWrite, Category: CategoryPassthrough},
	ToolReopenIssue:             {Name: ToolReopenIssue, Op: OpWrite, Category: CategoryPassthrough},
	ToolUpdateHotspotStatus:     {Name: ToolUpdateHotspotStatus, Op: OpWrite, Category: CategoryPassthrough},
}

// Known reports whether the name is a registered tool. Config validation
// uses this to reject rules that reference tools that do not exist.
func Known(name string) bool {
	_, ok := tools[name]
	return ok
}

// IsWriteOperation reports whether the tool mutates upstream state.
// Unknown tools are treated as reads; read-only rules therefore do not
// block them, only the allow-list does.
func IsWriteOperation(name string) bool {
	entry, ok := tools[name]
	return ok && entry.Op == OpWrite
}

// CategoryOf returns the response category for the tool. Unknown tools
// are passthrough.
func CategoryOf(name string) Category {
	return tools[name].Category
}

// Names returns every registered tool name, sorted.
func Names() []string {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
