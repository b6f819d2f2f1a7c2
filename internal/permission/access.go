// ABOUTME: Project-key pattern matching and access-based filtering.
// ABOUTME: Invalid patterns never match and never abort a decision.

package permission

import (
	"regexp"
	"strings"
)

// MatchesAny reports whether key matches at least one of the regex
// patterns. Patterns are unanchored unless they anchor themselves.
// Patterns that fail to compile are skipped.
func MatchesAny(key string, patterns []string) bool {
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

// ExtractProjectKey returns the project portion of a component key such as
// "project:src/main/File.java". Keys without a colon are returned whole,
// and keys starting with a colon are returned verbatim so a malformed key
// stays distinguishable from an absent one.
func ExtractProjectKey(componentKey string) string {
	if i := strings.Index(componentKey, ":"); i > 0 {
		return componentKey[:i]
	}
	return componentKey
}

// FilterPredicate compiles patterns once and returns a case-sensitive
// match predicate. Patterns that fail to compile are skipped; an empty or
// fully invalid pattern set yields a predicate that rejects every key.
func FilterPredicate(patterns []string) func(string) bool {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		compiled = append(compiled, re)
	}
	return func(key string) bool {
		for _, re := range compiled {
			if re.MatchString(key) {
				return true
			}
		}
		return false
	}
}

// FilterByAccess keeps the items whose key, as reported by keyOf, matches
// the rule's allowed project patterns. A nil rule or a rule with no
// allowed projects yields an empty result, never the unfiltered input.
func FilterByAccess[T any](items []T, keyOf func(T) string, rule *Rule) []T {
	out := make([]T, 0, len(items))
	if rule == nil || len(rule.AllowedProjects) == 0 {
		return out
	}
	match := FilterPredicate(rule.AllowedProjects)
	for _, item := range items {
		if match(keyOf(item)) {
			out = append(out, item)
		}
	}
	return out
}
