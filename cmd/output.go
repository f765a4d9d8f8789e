package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// render writes v to w in the given format
func render(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// currentFormat returns the output format selected by flag or config
func currentFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if cfg != nil {
		return cfg.Output.Format
	}
	return "json"
}

// parseFields builds an object's field map from a JSON document and
// key=value pairs. Pair values are decoded as JSON when possible, so
// PlanEstimate=3 is a number and Blocked=true a boolean; anything else
// is kept as a string. Pairs override keys from data.
func parseFields(data string, pairs []string) (map[string]any, error) {
	fields := make(map[string]any)

	if strings.TrimSpace(data) != "" {
		if err := json.Unmarshal([]byte(data), &fields); err != nil {
			return nil, fmt.Errorf("invalid --data: %w", err)
		}
	}

	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q: expected Key=Value", pair)
		}

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		fields[key] = value
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields given: use --set Key=Value or --data '{...}'")
	}

	return fields, nil
}
