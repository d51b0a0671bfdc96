package cli

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/efharkin/swc2dot/pkg/styles"
)

// loadStyleConfig returns a style registry seeded with the built-in
// defaults and, when path is non-empty, overlaid with the TOML document at
// path.
//
// The document is a set of tables keyed by compartment group name, with
// scalar attribute values:
//
//	[soma]
//	fillcolor = "red"
//	penwidth = 2
//
//	[dendrite]
//	shape = "box"
//
// Ints, floats and bools are coerced to their string forms. Attributes are
// applied in document order so the emitted styling blocks match the config
// file. Unknown group names are accepted and create new rules.
func loadStyleConfig(path string) (*styles.Registry, error) {
	reg := styles.New()
	if path == "" {
		return reg, nil
	}

	var raw map[string]map[string]any
	md, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("style config %s: %w", path, err)
	}

	// md.Keys preserves document order; collect each group's attributes in
	// the order they appear.
	groups := make(map[string]map[string]string)
	var groupOrder []string
	attrOrder := make(map[string][]string)

	for _, key := range md.Keys() {
		if len(key) != 2 {
			continue // top-level table headers and deeper nesting
		}
		group, attr := key[0], key[1]

		value, ok := raw[group][attr]
		if !ok {
			continue
		}
		str, err := coerceScalar(value)
		if err != nil {
			return nil, fmt.Errorf("style config %s: %s.%s: %w", path, group, attr, err)
		}

		if _, seen := groups[group]; !seen {
			groups[group] = make(map[string]string)
			groupOrder = append(groupOrder, group)
		}
		groups[group][attr] = str
		attrOrder[group] = append(attrOrder[group], attr)
	}

	for _, group := range groupOrder {
		reg.ApplyOrderedOverrides(group, groups[group], attrOrder[group])
	}
	return reg, nil
}

// coerceScalar converts a decoded TOML scalar to its DOT attribute string.
// Tables and arrays are rejected; attribute values must be scalars.
func coerceScalar(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return "", fmt.Errorf("expected a scalar value, got %T", v)
	}
}
