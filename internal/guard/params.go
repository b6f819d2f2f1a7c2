// ABOUTME: Extraction of project references from tool call arguments.
// ABOUTME: Component keys are reduced to project keys before checking.

package guard

import "github.com/lintgate/lintgate/internal/permission"

// ProjectKeysFromArgs collects every project the arguments reference.
// project_key and projectKey carry project keys verbatim; component
// carries a component key whose project part is extracted; components and
// component_keys are arrays of component keys. Non-string array entries
// are skipped.
func ProjectKeysFromArgs(args map[string]any) []string {
	var keys []string

	if v, ok := args["project_key"].(string); ok && v != "" {
		keys = append(keys, v)
	}
	if v, ok := args["projectKey"].(string); ok && v != "" {
		keys = append(keys, v)
	}
	if v, ok := args["component"].(string); ok && v != "" {
		keys = append(keys, permission.ExtractProjectKey(v))
	}

	for _, name := range []string{"components", "component_keys"} {
		list, ok := args[name].([]any)
		if !ok {
			continue
		}
		for _, el := range list {
			s, ok := el.(string)
			if !ok || s == "" {
				continue
			}
			keys = append(keys, permission.ExtractProjectKey(s))
		}
	}

	return keys
}
