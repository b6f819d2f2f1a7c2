// Package permission implements rule-based access control for gateway tools
// and upstream projects.
//
// # Overview
//
// Access is described by a set of Rules. Each rule names the user groups it
// applies to, the tools those users may call, the project-key patterns they
// may touch, and result-set restrictions (severity ceiling, status
// allow-list, sensitive-field redaction). For every check exactly one rule
// applies: the highest-priority rule whose groups are empty or intersect the
// user's groups, falling back to an optional default rule at priority -1.
//
// # Components
//
//   - Rule / Config: the declarative model, compiled once at Service
//     construction (project patterns become predicates; invalid patterns
//     never match and never fail a check)
//   - UserContext: identity derived from token claims via
//     UserContextFromClaims
//   - Service: CheckToolAccess, CheckProjectAccess,
//     CheckMultipleProjectAccess, FilterProjects, FilterIssues
//   - Decision cache: optional, cleared wholesale every CacheTTL so no
//     decision is served staler than the TTL
//   - Audit trail: bounded in-memory log of every decision, capped at 1000
//     entries with FIFO eviction, optionally forwarded to a Sink
//
// # Usage
//
//	svc := permission.NewService(permission.Config{
//		Rules: []permission.Rule{{
//			Groups:          []string{"dev"},
//			AllowedProjects: []string{"^dev-.*"},
//			AllowedTools:    []string{"issues", "projects"},
//		}},
//		CacheEnabled: true,
//		AuditEnabled: true,
//	}, permission.WithLogger(logger))
//	defer svc.Close()
//
//	result := svc.CheckToolAccess(ctx, user, "issues")
//	if !result.Allowed {
//		// result.Reason explains the denial
//	}
//
// Denials are values, never errors: a check either completes with a
// CheckResult or (for programming errors only) panics. Audit forwarding
// failures are logged and swallowed so audit plumbing can never break a
// permission decision.
package permission
