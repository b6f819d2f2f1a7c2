// ABOUTME: Rule model for tool and project access control.
// ABOUTME: Defines severity/status enums, Rule, Config, and CheckResult.

package permission

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCacheTTL is the decision-cache lifetime used when Config leaves
// CacheTTL unset.
const DefaultCacheTTL = 300 * time.Second

// Severity is an ordered issue severity. Comparisons use the ordinal
// order INFO < MINOR < MAJOR < CRITICAL < BLOCKER.
type Severity int

// Severities from least to most severe.
const (
	SeverityInfo Severity = iota
	SeverityMinor
	SeverityMajor
	SeverityCritical
	SeverityBlocker
)

var severityNames = map[Severity]string{
	SeverityInfo:     "INFO",
	SeverityMinor:    "MINOR",
	SeverityMajor:    "MAJOR",
	SeverityCritical: "CRITICAL",
	SeverityBlocker:  "BLOCKER",
}

// String returns the upstream wire name of the severity.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// ParseSeverity converts a wire-format severity name. Matching is
// case-insensitive.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INFO":
		return SeverityInfo, nil
	case "MINOR":
		return SeverityMinor, nil
	case "MAJOR":
		return SeverityMajor, nil
	case "CRITICAL":
		return SeverityCritical, nil
	case "BLOCKER":
		return SeverityBlocker, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

// Status is an issue or hotspot workflow status.
type Status string

// Statuses recognized by the rule model.
const (
	StatusOpen      Status = "OPEN"
	StatusConfirmed Status = "CONFIRMED"
	StatusReopened  Status = "REOPENED"
	StatusResolved  Status = "RESOLVED"
	StatusClosed    Status = "CLOSED"
	StatusToReview  Status = "TO_REVIEW"
	StatusInReview  Status = "IN_REVIEW"
	StatusReviewed  Status = "REVIEWED"
)

var validStatuses = map[Status]struct{}{
	StatusOpen:      {},
	StatusConfirmed: {},
	StatusReopened:  {},
	StatusResolved:  {},
	StatusClosed:    {},
	StatusToReview:  {},
	StatusInReview:  {},
	StatusReviewed:  {},
}

// ParseStatus converts a wire-format status name. Matching is
// case-insensitive.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := validStatuses[st]; !ok {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// Rule grants a set of groups access to tools and projects. An empty
// Groups list makes the rule apply to every user (wildcard rule).
type Rule struct {
	// Groups names the user groups this rule applies to.
	Groups []string

	// AllowedProjects holds regex patterns tested against project keys.
	// An empty list denies access to every project.
	AllowedProjects []string

	// AllowedTools lists the tool names members may call.
	AllowedTools []string

	// DeniedTools lists explicit denials, checked before AllowedTools.
	DeniedTools []string

	// Readonly rejects tools classified as write operations even when
	// they appear in AllowedTools.
	Readonly bool

	// MaxSeverity drops issues above this severity from results.
	MaxSeverity *Severity

	// AllowedStatuses drops issues whose status is not a member. Empty
	// means no status filtering.
	AllowedStatuses []Status

	// HideSensitiveData redacts author, assignee, comment identity and
	// body fields, and empties changelogs in issue results.
	HideSensitiveData bool

	// Priority orders rules when several match a user. Higher wins;
	// ties keep the configured order.
	Priority int
}

// HasTool reports whether the rule's allow-list contains the tool.
func (r *Rule) HasTool(tool string) bool {
	for _, t := range r.AllowedTools {
		if t == tool {
			return true
		}
	}
	return false
}

// DeniesTool reports whether the rule explicitly denies the tool.
func (r *Rule) DeniesTool(tool string) bool {
	for _, t := range r.DeniedTools {
		if t == tool {
			return true
		}
	}
	return false
}

// AllowsStatus reports whether the rule's status allow-list admits the
// given wire-format status. An empty allow-list admits everything.
func (r *Rule) AllowsStatus(status string) bool {
	if len(r.AllowedStatuses) == 0 {
		return true
	}
	st := Status(strings.ToUpper(strings.TrimSpace(status)))
	for _, allowed := range r.AllowedStatuses {
		if allowed == st {
			return true
		}
	}
	return false
}

// appliesTo reports whether this rule covers a user with the given groups.
func (r *Rule) appliesTo(groups []string) bool {
	if len(r.Groups) == 0 {
		return true
	}
	for _, rg := range r.Groups {
		for _, ug := range groups {
			if rg == ug {
				return true
			}
		}
	}
	return false
}

// Config is the full permission configuration handed to NewService.
type Config struct {
	// Rules in configured order. Evaluation sorts by priority descending
	// while preserving this order among equal priorities.
	Rules []Rule

	// DefaultRule, when set, applies to users no other rule covers. It
	// participates at priority -1 regardless of the priority it carries.
	DefaultRule *Rule

	// CacheEnabled turns on the decision cache.
	CacheEnabled bool

	// CacheTTL bounds how stale a cached decision may be. Zero means
	// DefaultCacheTTL.
	CacheTTL time.Duration

	// AuditEnabled records every decision in the in-memory trail and
	// forwards it to the configured sink.
	AuditEnabled bool
}

// CheckResult is the outcome of a single permission check.
type CheckResult struct {
	// Allowed reports whether the access was granted.
	Allowed bool

	// Reason explains a denial. Empty when Allowed.
	Reason string

	// Rule is the applied rule, set whenever one was found regardless of
	// the outcome. Callers must not mutate it.
	Rule *Rule
}
