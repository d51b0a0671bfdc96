// Package styles resolves compartment kinds to DOT node attributes.
//
// A Registry holds one attribute rule per compartment kind, seeded with
// built-in defaults. Caller-supplied overrides are merged attribute by
// attribute: an override replaces or adds individual keys and leaves the
// rest of the rule untouched. Overrides are caller-trusted data, so unknown
// group names create new rules rather than failing.
package styles

import (
	"fmt"
	"slices"
	"strings"

	"github.com/efharkin/swc2dot/pkg/swc"
)

// Rule is an insertion-ordered mapping of DOT attribute names to values for
// one compartment kind. Order is preserved so serialized output is stable
// across runs.
type Rule struct {
	keys   []string
	values map[string]string
}

// NewRule returns an empty rule.
func NewRule() *Rule {
	return &Rule{values: make(map[string]string)}
}

// Set adds or replaces an attribute. New keys keep insertion order;
// replacing an existing key keeps its original position.
func (r *Rule) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether it is set.
func (r *Rule) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of attributes in the rule.
func (r *Rule) Len() int { return len(r.keys) }

// Keys returns the attribute names in insertion order.
// The returned slice is a read-only view; do not modify it.
func (r *Rule) Keys() []string { return r.keys }

// Merge overlays other onto r attribute by attribute. Keys present in other
// win; keys absent from other keep their current values.
func (r *Rule) Merge(other map[string]string, order []string) {
	for _, k := range order {
		r.Set(k, other[k])
	}
}

// Attrs renders the rule as a DOT attribute list, e.g.
// "node [shape=circle,fillcolor=red];". Values containing characters
// outside the DOT ID alphabet are quoted.
func (r *Rule) Attrs() string {
	var b strings.Builder
	b.WriteString("node [")
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(quoteValue(r.values[k]))
	}
	b.WriteString("];")
	return b.String()
}

// quoteValue wraps v in double quotes unless it is a plain DOT identifier
// (alphanumerics, underscores, dots and dashes).
func quoteValue(v string) string {
	if v == "" {
		return `""`
	}
	for _, c := range v {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9', c == '_', c == '.', c == '-':
		default:
			return fmt.Sprintf("%q", v)
		}
	}
	return v
}

// Registry maps compartment kinds to attribute rules.
//
// The zero value is not usable; use [New] to get a registry seeded with the
// built-in defaults.
type Registry struct {
	rules map[string]*Rule
}

// builtins lists the default rule per kind group, in attribute order.
// Shapes follow common morphology-viewer conventions: round soma, plain
// axon, boxy dendrites.
var builtins = []struct {
	group string
	attrs [][2]string
}{
	{"undefined", [][2]string{
		{"shape", "point"},
		{"style", "filled"},
		{"fillcolor", "gray"},
	}},
	{"soma", [][2]string{
		{"shape", "circle"},
		{"style", "filled"},
		{"fillcolor", "black"},
		{"fontcolor", "white"},
	}},
	{"axon", [][2]string{
		{"shape", "ellipse"},
		{"style", "solid"},
		{"color", "firebrick"},
	}},
	{"dendrite", [][2]string{
		{"shape", "box"},
		{"style", "filled"},
		{"fillcolor", "lightsteelblue"},
	}},
	{"apicaldendrite", [][2]string{
		{"shape", "box"},
		{"style", "filled"},
		{"fillcolor", "steelblue"},
	}},
	{"custom", [][2]string{
		{"shape", "diamond"},
		{"style", "dashed"},
	}},
}

// New returns a registry seeded with the built-in rule for every kind.
func New() *Registry {
	reg := &Registry{rules: make(map[string]*Rule, len(builtins))}
	for _, b := range builtins {
		rule := NewRule()
		for _, kv := range b.attrs {
			rule.Set(kv[0], kv[1])
		}
		reg.rules[b.group] = rule
	}
	return reg
}

// Overrides maps a kind group name ("soma", "axon", ...) to attribute
// overrides for that group. It is the shape produced by the CLI's TOML
// config loader, but any caller may supply one directly.
type Overrides map[string]map[string]string

// ApplyOverrides merges each override group into the corresponding rule,
// attribute by attribute. Group names not matching a known kind create a
// fresh rule so callers can target vendor-specific groups.
//
// Map iteration order is not deterministic, so attribute keys within each
// group are merged in sorted order; serialized output stays byte-identical
// across runs. Use [Registry.ApplyOrderedOverrides] when the caller has a
// meaningful attribute order to preserve.
func (reg *Registry) ApplyOverrides(o Overrides) {
	for group, attrs := range o {
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		reg.applyGroup(group, attrs, keys)
	}
}

// ApplyOrderedOverrides merges one override group using the caller's
// attribute order, typically the order attributes appeared in a config
// document.
func (reg *Registry) ApplyOrderedOverrides(group string, attrs map[string]string, order []string) {
	reg.applyGroup(group, attrs, order)
}

func (reg *Registry) applyGroup(group string, attrs map[string]string, order []string) {
	rule, ok := reg.rules[group]
	if !ok {
		rule = NewRule()
		reg.rules[group] = rule
	}
	rule.Merge(attrs, order)
}

// Resolve returns the rule for the given kind. Unrecognized kinds resolve
// to the custom rule. Resolve never fails and never returns nil.
func (reg *Registry) Resolve(kind swc.Kind) *Rule {
	if rule, ok := reg.rules[kind.GroupName()]; ok {
		return rule
	}
	return reg.rules["custom"]
}
