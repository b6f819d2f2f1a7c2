// ABOUTME: UserContext model and derivation from validated token claims.
// ABOUTME: Group extraction supports several conventional claim names.

package permission

import (
	"strings"
	"unicode"
)

// AnonymousUserID identifies checks made without an authenticated user.
const AnonymousUserID = "anonymous"

// UserContext is the identity a permission check runs against. It is
// derived per request from validated claims and never persisted.
type UserContext struct {
	UserID string
	Groups []string
	Scopes []string
	Issuer string
	Claims map[string]any
}

// groupClaimNames are the claim names checked for group membership, in
// order. Values from every present claim are merged.
var groupClaimNames = []string{"groups", "group", "roles", "role", "authorities"}

// UserContextFromClaims derives a UserContext from a validated claims map.
// Groups are collected from the conventional claim names (array values or
// comma/space-delimited strings), de-duplicated in order of first
// appearance. Scopes come from a space-delimited "scope" claim.
func UserContextFromClaims(claims map[string]any) *UserContext {
	uc := &UserContext{Claims: claims}

	if sub, ok := claims["sub"].(string); ok {
		uc.UserID = sub
	}
	if iss, ok := claims["iss"].(string); ok {
		uc.Issuer = iss
	}

	seen := make(map[string]struct{})
	for _, name := range groupClaimNames {
		raw, ok := claims[name]
		if !ok {
			continue
		}
		for _, g := range groupValues(raw) {
			if _, dup := seen[g]; dup {
				continue
			}
			seen[g] = struct{}{}
			uc.Groups = append(uc.Groups, g)
		}
	}

	if scope, ok := claims["scope"].(string); ok {
		uc.Scopes = strings.Fields(scope)
	}

	return uc
}

// groupValues normalizes one claim value into group names. Arrays keep
// their string elements; strings are split on commas and whitespace.
func groupValues(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		groups := make([]string, 0, len(v))
		for _, el := range v {
			if s, ok := el.(string); ok && s != "" {
				groups = append(groups, s)
			}
		}
		return groups
	case string:
		return strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
	}
	return nil
}

// userID returns the audit identity for a context, which may be nil.
func userID(user *UserContext) string {
	if user == nil || user.UserID == "" {
		return AnonymousUserID
	}
	return user.UserID
}

// userGroups returns the groups of a possibly-nil context.
func userGroups(user *UserContext) []string {
	if user == nil {
		return nil
	}
	return user.Groups
}
