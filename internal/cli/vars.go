// Package cli provides parsing of --var flags.
package cli

import (
	"fmt"
	"strings"
)

// parseTemplateVars turns key=value entries into a map. Each entry is one
// variable; the value is everything after the first "=", commas included.
func parseTemplateVars(values []string) (map[string]string, error) {
	vars := make(map[string]string, len(values))
	for _, value := range values {
		key, val, ok := strings.Cut(value, "=")
		if !ok {
			return nil, fmt.Errorf("invalid variable %q (expected key=value)", value)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid variable %q (empty key)", value)
		}
		vars[key] = val
	}
	return vars, nil
}
