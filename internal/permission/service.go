// ABOUTME: Permission service: tool/project access checks and result filtering.
// ABOUTME: One rule applies per check; denials are values, never errors.

package permission

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lintgate/lintgate/internal/catalog"
	"github.com/lintgate/lintgate/internal/upstream"
)

// RedactedMarker replaces sensitive field values when the applied rule
// hides sensitive data.
const RedactedMarker = "[REDACTED]"

// compiledRule pairs a rule with its pre-compiled project matcher.
type compiledRule struct {
	Rule
	matchProject func(string) bool
}

// Service evaluates permission checks against a compiled rule set. It is
// safe for concurrent use.
type Service struct {
	rules  []compiledRule
	cache  *decisionCache
	trail  *auditTrail
	sink   Sink
	audit  bool
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for decision and drop logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSink forwards every audit entry to an external sink. Sink failures
// are logged and swallowed.
func WithSink(sink Sink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

// NewService compiles the configuration into a ready service. Project
// patterns are compiled here, once; patterns that fail to compile are
// logged and never match, but they never fail construction. Call Close
// when done to stop the cache timer.
func NewService(cfg Config, opts ...Option) *Service {
	s := &Service{
		trail:  &auditTrail{},
		audit:  cfg.AuditEnabled,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "permission")

	rules := make([]compiledRule, 0, len(cfg.Rules)+1)
	for _, rule := range cfg.Rules {
		rules = append(rules, s.compileRule(rule))
	}
	if cfg.DefaultRule != nil {
		def := *cfg.DefaultRule
		def.Priority = -1
		rules = append(rules, s.compileRule(def))
	}
	// Highest priority first; stable so equal priorities keep config order.
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	s.rules = rules

	if cfg.CacheEnabled {
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		s.cache = newDecisionCache(ttl)
	}

	s.logger.Debug("permission service ready",
		"rules", len(s.rules),
		"caching", cfg.CacheEnabled,
		"audit", cfg.AuditEnabled,
	)
	return s
}

// compileRule builds the rule's project matcher, logging any pattern that
// does not compile.
func (s *Service) compileRule(rule Rule) compiledRule {
	for _, pattern := range rule.AllowedProjects {
		if _, err := regexp.Compile(pattern); err != nil {
			s.logger.Warn("ignoring invalid project pattern",
				"pattern", pattern,
				"error", err,
			)
		}
	}
	return compiledRule{Rule: rule, matchProject: FilterPredicate(rule.AllowedProjects)}
}

// CheckToolAccess decides whether the user may invoke the named tool.
// Denial precedence: no applicable rule, explicit denial, absence from the
// allow-list, then the read-only gate for write operations. Fresh
// decisions are cached and audited; cached decisions are returned as-is.
func (s *Service) CheckToolAccess(ctx context.Context, user *UserContext, tool string) CheckResult {
	key := cacheKey{userID: userID(user), kind: checkKindTool, target: tool}
	if s.cache != nil {
		if cached, ok := s.cache.get(key); ok {
			return cached
		}
	}

	result := s.evalToolAccess(user, tool)
	if s.cache != nil {
		s.cache.put(key, result)
	}
	s.record(ctx, user, ActionToolAccess, tool, result)
	return result
}

func (s *Service) evalToolAccess(user *UserContext, tool string) CheckResult {
	rule := s.applicableRule(user)
	if rule == nil {
		return CheckResult{Reason: "No applicable permission rule found"}
	}

	switch {
	case rule.DeniesTool(tool):
		return CheckResult{
			Reason: fmt.Sprintf("Tool '%s' is explicitly denied", tool),
			Rule:   &rule.Rule,
		}
	case !rule.HasTool(tool):
		return CheckResult{
			Reason: fmt.Sprintf("Tool '%s' is not in the allowed tools list", tool),
			Rule:   &rule.Rule,
		}
	case rule.Readonly && catalog.IsWriteOperation(tool):
		return CheckResult{
			Reason: fmt.Sprintf("Tool '%s' is a write operation but the applied rule is read-only", tool),
			Rule:   &rule.Rule,
		}
	}
	return CheckResult{Allowed: true, Rule: &rule.Rule}
}

// CheckProjectAccess decides whether the user may touch the given project.
// The key must already be a project key; run component keys through
// ExtractProjectKey first.
func (s *Service) CheckProjectAccess(ctx context.Context, user *UserContext, projectKey string) CheckResult {
	key := cacheKey{userID: userID(user), kind: checkKindProject, target: projectKey}
	if s.cache != nil {
		if cached, ok := s.cache.get(key); ok {
			return cached
		}
	}

	result := s.evalProjectAccess(user, projectKey)
	if s.cache != nil {
		s.cache.put(key, result)
	}
	s.record(ctx, user, ActionProjectAccess, projectKey, result)
	return result
}

func (s *Service) evalProjectAccess(user *UserContext, projectKey string) CheckResult {
	rule := s.applicableRule(user)
	if rule == nil {
		return CheckResult{Reason: "No applicable permission rule found"}
	}
	if !rule.matchProject(projectKey) {
		return CheckResult{
			Reason: fmt.Sprintf("Project '%s' does not match any allowed patterns", projectKey),
			Rule:   &rule.Rule,
		}
	}
	return CheckResult{Allowed: true, Rule: &rule.Rule}
}

// CheckMultipleProjectAccess checks every key in order and stops at the
// first denial, whose reason names the failing key. Each key is checked
// through CheckProjectAccess and therefore individually cached and
// audited. An empty key list is allowed.
func (s *Service) CheckMultipleProjectAccess(ctx context.Context, user *UserContext, projectKeys []string) CheckResult {
	last := CheckResult{Allowed: true}
	for _, key := range projectKeys {
		result := s.CheckProjectAccess(ctx, user, key)
		if !result.Allowed {
			return CheckResult{
				Reason: fmt.Sprintf("Access denied to project '%s': %s", key, result.Reason),
				Rule:   result.Rule,
			}
		}
		last = result
	}
	return last
}

// FilterProjects keeps the projects the user's rule allows. Without an
// applicable rule, or with an empty project allow-list, the result is
// empty, never the unfiltered input.
func (s *Service) FilterProjects(user *UserContext, projects []upstream.Project) []upstream.Project {
	out := make([]upstream.Project, 0, len(projects))

	rule := s.applicableRule(user)
	if rule == nil {
		s.logger.Debug("dropping all projects: no applicable rule", "user", userID(user))
		return out
	}
	if len(rule.AllowedProjects) == 0 {
		s.logger.Debug("dropping all projects: rule allows none", "user", userID(user))
		return out
	}

	for _, project := range projects {
		if rule.matchProject(project.Key) {
			out = append(out, project)
			continue
		}
		s.logger.Debug("dropping project from results",
			"project", project.Key,
			"user", userID(user),
		)
	}
	return out
}

// FilterIssues keeps the issues the user's rule allows: severity at or
// below the rule's ceiling and status inside the allow-list. Kept issues
// are redacted in place when the rule hides sensitive data, so the input
// slice observes the redaction too. Without an applicable rule the result
// is empty.
func (s *Service) FilterIssues(user *UserContext, issues []upstream.Issue) []upstream.Issue {
	out := make([]upstream.Issue, 0, len(issues))

	rule := s.applicableRule(user)
	if rule == nil {
		s.logger.Debug("dropping all issues: no applicable rule", "user", userID(user))
		return out
	}

	for i := range issues {
		issue := &issues[i]
		if rule.MaxSeverity != nil && severityExceeds(issue.Severity, *rule.MaxSeverity) {
			s.logger.Debug("dropping issue above severity ceiling",
				"issue", issue.Key,
				"severity", issue.Severity,
			)
			continue
		}
		if !rule.AllowsStatus(issue.Status) {
			s.logger.Debug("dropping issue outside allowed statuses",
				"issue", issue.Key,
				"status", issue.Status,
			)
			continue
		}
		if rule.HideSensitiveData {
			redactIssue(issue)
		}
		out = append(out, *issue)
	}
	return out
}

// severityExceeds reports whether the wire severity is strictly above the
// ceiling. Unrecognized severities are treated as not exceeding.
func severityExceeds(wire string, ceiling Severity) bool {
	severity, err := ParseSeverity(wire)
	if err != nil {
		return false
	}
	return severity > ceiling
}

// redactIssue replaces sensitive fields in place. Applying it twice
// yields the same result as applying it once.
func redactIssue(issue *upstream.Issue) {
	issue.Author = RedactedMarker
	issue.Assignee = RedactedMarker
	for i := range issue.Comments {
		comment := &issue.Comments[i]
		comment.Login = RedactedMarker
		comment.HTMLText = RedactedMarker
		comment.Markdown = RedactedMarker
	}
	issue.Changelog = []upstream.ChangelogEntry{}
}

// ApplicableRule returns the rule that governs checks for the user, or
// nil when none (including the default) applies. Callers must not mutate
// the returned rule.
func (s *Service) ApplicableRule(user *UserContext) *Rule {
	if rule := s.applicableRule(user); rule != nil {
		return &rule.Rule
	}
	return nil
}

// applicableRule scans the priority-sorted rules for the first match.
func (s *Service) applicableRule(user *UserContext) *compiledRule {
	groups := userGroups(user)
	for i := range s.rules {
		if s.rules[i].appliesTo(groups) {
			return &s.rules[i]
		}
	}
	return nil
}

// AuditLog returns a copy of the in-memory audit trail, oldest first.
func (s *Service) AuditLog() []AuditEntry {
	return s.trail.snapshot()
}

// ClearCache drops every cached decision immediately.
func (s *Service) ClearCache() {
	if s.cache != nil {
		s.cache.clear()
	}
}

// Close stops the cache timer. Safe to call multiple times.
func (s *Service) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

// record appends the decision to the audit trail and forwards it to the
// sink. Sink failures never reach the caller.
func (s *Service) record(ctx context.Context, user *UserContext, action AuditAction, target string, result CheckResult) {
	if !s.audit {
		return
	}

	event := EventGranted
	if !result.Allowed {
		event = EventDenied
	}
	entry := AuditEntry{
		ID:        uuid.New().String(),
		Event:     event,
		UserID:    userID(user),
		Groups:    append([]string(nil), userGroups(user)...),
		Action:    action,
		Target:    target,
		Allowed:   result.Allowed,
		Reason:    result.Reason,
		Timestamp: time.Now().UTC(),
	}

	s.trail.add(entry)

	if s.sink != nil {
		if err := s.sink.Record(ctx, entry); err != nil {
			s.logger.Warn("audit sink rejected entry",
				"action", entry.Action,
				"target", entry.Target,
				"error", err,
			)
		}
	}
}
