// ABOUTME: Tolerant accessors for MCP tool call arguments.
// ABOUTME: JSON numbers arrive as float64; lists may be arrays or CSV strings.

package tools

import "strings"

// stringArg returns the named string argument, or "" when absent.
func stringArg(args map[string]any, name string) string {
	v, _ := args[name].(string)
	return v
}

// intArg returns the named integer argument, or 0 when absent.
func intArg(args map[string]any, name string) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// boolArg returns the named boolean argument and whether it was present.
func boolArg(args map[string]any, name string) (bool, bool) {
	v, ok := args[name].(bool)
	return v, ok
}

// stringListArg accepts either an array of strings or a comma-separated
// string for the named argument. Empty and non-string entries are
// dropped.
func stringListArg(args map[string]any, name string) []string {
	switch v := args[name].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, el := range v {
			if s, ok := el.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return nil
}
