// Package swc parses SWC neuron morphology files into typed compartment
// records.
//
// SWC is a plain-text format with one compartment per line:
//
//	id type x y z radius parent
//
// Lines starting with '#' are comments and blank lines are ignored. A
// negative parent id marks the compartment as a root.
//
// Use [ParseLine] for a single line or [Parse] for a whole stream. The
// parser only validates record shape; structural validation (duplicate ids,
// dangling parents, cycles) is the job of the morph package.
package swc

import "fmt"

// Kind identifies the compartment type of an SWC record.
//
// The codes follow the basic SWC standard: 0 undefined, 1 soma, 2 axon,
// 3 (basal) dendrite, 4 apical dendrite. Codes of 5 and above are custom
// types; they all map to KindCustom.
type Kind int

const (
	KindUndefined Kind = iota
	KindSoma
	KindAxon
	KindDendrite
	KindApicalDendrite
	KindCustom
)

// Kinds lists all compartment kinds in ascending type-code order.
// This is the canonical ordering used when emitting per-kind output.
var Kinds = []Kind{
	KindUndefined,
	KindSoma,
	KindAxon,
	KindDendrite,
	KindApicalDendrite,
	KindCustom,
}

// KindOf maps a raw SWC type code to a Kind.
// Unrecognized codes (5 and above, or negative) map to KindCustom so that
// files using vendor-specific extensions still convert.
func KindOf(code int) Kind {
	if code >= 0 && code <= int(KindApicalDendrite) {
		return Kind(code)
	}
	return KindCustom
}

// String returns the human-readable name of the kind, matching the
// terminology used in neuroanatomy tooling.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindSoma:
		return "somatic"
	case KindAxon:
		return "axonal"
	case KindDendrite:
		return "(basal) dendritic"
	case KindApicalDendrite:
		return "apical dendritic"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// GroupName returns the kind's identifier in style-override documents
// ("soma", "axon", "dendrite", "apicaldendrite", "undefined", "custom").
func (k Kind) GroupName() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindSoma:
		return "soma"
	case KindAxon:
		return "axon"
	case KindDendrite:
		return "dendrite"
	case KindApicalDendrite:
		return "apicaldendrite"
	default:
		return "custom"
	}
}

// NoParent is the Parent value of a root compartment.
const NoParent = -1

// Compartment is one parsed SWC record: a labeled 3D point with a parent
// reference. Position and radius are carried through for downstream
// consumers but are not interpreted during conversion.
type Compartment struct {
	ID     int
	Kind   Kind
	X      float64
	Y      float64
	Z      float64
	Radius float64
	Parent int // NoParent for roots
}

// IsRoot reports whether the compartment has no parent.
func (c Compartment) IsRoot() bool { return c.Parent == NoParent }
