package cli

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// parseKeyValues turns repeated "key=value" flags into a metadata map.
// Values go through YAML scalar parsing so numbers, bools, and dates keep
// their types.
func parseKeyValues(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, rawValue, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid key=value pair: %q", pair)
		}

		var value any
		if err := yaml.Unmarshal([]byte(rawValue), &value); err != nil {
			value = rawValue
		}
		out[key] = value
	}
	return out, nil
}
