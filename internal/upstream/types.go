// ABOUTME: Response types for the Sonar-compatible REST API surface.
// ABOUTME: Field names mirror the upstream JSON shapes (camelCase keys).

package upstream

import (
	"encoding/json"
	"strings"
)

// Paging describes the pagination block common to list responses.
type Paging struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
}

// Project is a single project as returned by project search.
type Project struct {
	Key              string `json:"key"`
	Name             string `json:"name"`
	Qualifier        string `json:"qualifier,omitempty"`
	Visibility       string `json:"visibility,omitempty"`
	LastAnalysisDate string `json:"lastAnalysisDate,omitempty"`
	Revision         string `json:"revision,omitempty"`
}

// ProjectSearchResult is the gateway-facing shape of a project listing.
type ProjectSearchResult struct {
	Projects []Project `json:"projects"`
	Paging   Paging    `json:"paging"`
}

// Component is a file, directory, or module within a project.
// Its Key is a component key of the form "projectKey:path".
type Component struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Qualifier string `json:"qualifier,omitempty"`
	Path      string `json:"path,omitempty"`
	Language  string `json:"language,omitempty"`
	Project   string `json:"project,omitempty"`
}

// ComponentSearchResult holds a page of component search results.
type ComponentSearchResult struct {
	Components []Component `json:"components"`
	Paging     Paging      `json:"paging"`
}

// TextRange locates an issue within a file.
type TextRange struct {
	StartLine   int `json:"startLine"`
	EndLine     int `json:"endLine"`
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`
}

// Comment is a discussion entry attached to an issue.
type Comment struct {
	Key       string `json:"key,omitempty"`
	Login     string `json:"login,omitempty"`
	HTMLText  string `json:"htmlText,omitempty"`
	Markdown  string `json:"markdown,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	Updatable bool   `json:"updatable,omitempty"`
}

// ChangelogDiff is a single field change within a changelog entry.
type ChangelogDiff struct {
	Key      string `json:"key"`
	OldValue string `json:"oldValue,omitempty"`
	NewValue string `json:"newValue,omitempty"`
}

// ChangelogEntry records one historical modification of an issue.
type ChangelogEntry struct {
	User         string          `json:"user,omitempty"`
	UserName     string          `json:"userName,omitempty"`
	CreationDate string          `json:"creationDate,omitempty"`
	Diffs        []ChangelogDiff `json:"diffs,omitempty"`
}

// Issue is a single finding as returned by issue search.
type Issue struct {
	Key          string           `json:"key"`
	Rule         string           `json:"rule,omitempty"`
	Severity     string           `json:"severity,omitempty"`
	Component    string           `json:"component,omitempty"`
	Project      string           `json:"project,omitempty"`
	Line         int              `json:"line,omitempty"`
	TextRange    *TextRange       `json:"textRange,omitempty"`
	Status       string           `json:"status,omitempty"`
	Resolution   string           `json:"resolution,omitempty"`
	Message      string           `json:"message,omitempty"`
	Effort       string           `json:"effort,omitempty"`
	Author       string           `json:"author,omitempty"`
	Assignee     string           `json:"assignee,omitempty"`
	Type         string           `json:"type,omitempty"`
	Tags         []string         `json:"tags,omitempty"`
	Comments     []Comment        `json:"comments,omitempty"`
	Changelog    []ChangelogEntry `json:"changelog,omitempty"`
	CreationDate string           `json:"creationDate,omitempty"`
	UpdateDate   string           `json:"updateDate,omitempty"`
}

// IssueSearchResult holds a page of issue search results.
type IssueSearchResult struct {
	Issues     []Issue     `json:"issues"`
	Components []Component `json:"components,omitempty"`
	Paging     Paging      `json:"paging"`
}

// BulkChangeResult summarizes the outcome of a bulk issue transition.
type BulkChangeResult struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Ignored int `json:"ignored"`
	Failure int `json:"failures"`
}

// ProjectRef identifies the project a hotspot belongs to. The upstream API
// returns either an object carrying a key or a bare project-key string;
// shapes that are neither leave the ref empty rather than failing the
// whole response decode.
type ProjectRef struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts both the object and bare-string forms.
func (p *ProjectRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null" || trimmed == "":
		return nil
	case strings.HasPrefix(trimmed, `"`):
		return json.Unmarshal(data, &p.Key)
	case strings.HasPrefix(trimmed, "{"):
		type plain ProjectRef
		var v plain
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*p = ProjectRef(v)
		return nil
	default:
		// Unresolvable shape. Leave the key empty so access filtering
		// drops the item instead of erroring the whole response.
		return nil
	}
}

// Hotspot is a security hotspot as returned by hotspot search.
type Hotspot struct {
	Key                      string     `json:"key"`
	Component                string     `json:"component,omitempty"`
	Project                  ProjectRef `json:"project,omitempty"`
	SecurityCategory         string     `json:"securityCategory,omitempty"`
	VulnerabilityProbability string     `json:"vulnerabilityProbability,omitempty"`
	Status                   string     `json:"status,omitempty"`
	Resolution               string     `json:"resolution,omitempty"`
	Line                     int        `json:"line,omitempty"`
	Message                  string     `json:"message,omitempty"`
	Author                   string     `json:"author,omitempty"`
	Assignee                 string     `json:"assignee,omitempty"`
	RuleKey                  string     `json:"ruleKey,omitempty"`
	CreationDate             string     `json:"creationDate,omitempty"`
	UpdateDate               string     `json:"updateDate,omitempty"`
}

// HotspotSearchResult holds a page of hotspot search results.
type HotspotSearchResult struct {
	Hotspots   []Hotspot   `json:"hotspots"`
	Components []Component `json:"components,omitempty"`
	Paging     Paging      `json:"paging"`
}

// HotspotRule describes the rule behind a hotspot.
type HotspotRule struct {
	Key                      string `json:"key"`
	Name                     string `json:"name,omitempty"`
	SecurityCategory         string `json:"securityCategory,omitempty"`
	VulnerabilityProbability string `json:"vulnerabilityProbability,omitempty"`
}

// HotspotDetails is the full view of a single hotspot.
type HotspotDetails struct {
	Key          string      `json:"key"`
	Component    Component   `json:"component"`
	Project      ProjectRef  `json:"project"`
	Rule         HotspotRule `json:"rule"`
	Status       string      `json:"status,omitempty"`
	Resolution   string      `json:"resolution,omitempty"`
	Line         int         `json:"line,omitempty"`
	Message      string      `json:"message,omitempty"`
	Author       string      `json:"author,omitempty"`
	Assignee     string      `json:"assignee,omitempty"`
	CreationDate string      `json:"creationDate,omitempty"`
	UpdateDate   string      `json:"updateDate,omitempty"`
	Comments     []Comment   `json:"comment,omitempty"`
}

// Metric is a metric definition.
type Metric struct {
	Key         string `json:"key"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Domain      string `json:"domain,omitempty"`
	Type        string `json:"type,omitempty"`
	Qualitative bool   `json:"qualitative,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
}

// MetricsResult holds a page of metric definitions.
type MetricsResult struct {
	Metrics  []Metric `json:"metrics"`
	Total    int      `json:"total"`
	Page     int      `json:"p"`
	PageSize int      `json:"ps"`
}

// Measure is a single metric value on a component.
type Measure struct {
	Metric    string `json:"metric"`
	Component string `json:"component,omitempty"`
	Value     string `json:"value,omitempty"`
	BestValue *bool  `json:"bestValue,omitempty"`
}

// MeasuresComponent is a component together with its requested measures.
type MeasuresComponent struct {
	Key       string    `json:"key"`
	Name      string    `json:"name,omitempty"`
	Qualifier string    `json:"qualifier,omitempty"`
	Measures  []Measure `json:"measures"`
}

// ComponentMeasuresResult is the response to a single-component measures query.
type ComponentMeasuresResult struct {
	Component MeasuresComponent `json:"component"`
	Metrics   []Metric          `json:"metrics,omitempty"`
}

// MeasuresSearchResult is the response to a multi-component measures query.
type MeasuresSearchResult struct {
	Measures []Measure `json:"measures"`
}

// HistoryValue is one dated value in a measure history.
type HistoryValue struct {
	Date  string `json:"date"`
	Value string `json:"value,omitempty"`
}

// MeasureHistory is the history of one metric on one component.
type MeasureHistory struct {
	Metric  string         `json:"metric"`
	History []HistoryValue `json:"history"`
}

// MeasuresHistoryResult holds a page of measure histories.
type MeasuresHistoryResult struct {
	Measures []MeasureHistory `json:"measures"`
	Paging   Paging           `json:"paging"`
}

// QualityGateCondition is one threshold within a quality gate definition.
type QualityGateCondition struct {
	ID     string `json:"id,omitempty"`
	Metric string `json:"metric"`
	Op     string `json:"op,omitempty"`
	Error  string `json:"error,omitempty"`
}

// QualityGate is a quality gate definition.
type QualityGate struct {
	ID         string                 `json:"id,omitempty"`
	Name       string                 `json:"name"`
	IsDefault  bool                   `json:"isDefault,omitempty"`
	IsBuiltIn  bool                   `json:"isBuiltIn,omitempty"`
	Conditions []QualityGateCondition `json:"conditions,omitempty"`
}

// QualityGatesResult lists the configured quality gates.
type QualityGatesResult struct {
	QualityGates []QualityGate `json:"qualitygates"`
	Default      string        `json:"default,omitempty"`
}

// GateConditionStatus is the evaluated state of one gate condition.
type GateConditionStatus struct {
	Status         string `json:"status"`
	MetricKey      string `json:"metricKey"`
	Comparator     string `json:"comparator,omitempty"`
	ErrorThreshold string `json:"errorThreshold,omitempty"`
	ActualValue    string `json:"actualValue,omitempty"`
}

// QualityGateStatus is the evaluated gate state of a project.
type QualityGateStatus struct {
	Status            string                `json:"status"`
	Conditions        []GateConditionStatus `json:"conditions,omitempty"`
	IgnoredConditions bool                  `json:"ignoredConditions,omitempty"`
	CaycStatus        string                `json:"caycStatus,omitempty"`
}

// ScmBlameResult holds per-line SCM information. Each row is
// [line, author, datetime, revision] as delivered by the upstream API.
type ScmBlameResult struct {
	Scm [][]any `json:"scm"`
}

// SystemHealth is the upstream health verdict.
type SystemHealth struct {
	Health string        `json:"health"`
	Causes []HealthCause `json:"causes,omitempty"`
}

// HealthCause explains a degraded health verdict.
type HealthCause struct {
	Message string `json:"message"`
}

// SystemStatus is the upstream lifecycle status.
type SystemStatus struct {
	ID      string `json:"id,omitempty"`
	Version string `json:"version,omitempty"`
	Status  string `json:"status"`
}
