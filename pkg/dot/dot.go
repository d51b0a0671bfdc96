// Package dot serializes a compartment forest to the DOT graph language.
//
// The output is an undirected graph: one styling block per compartment kind
// present in the morphology, followed by one structural line per
// compartment. Given a valid graph and registry, serialization is a total
// function and identical input always yields byte-identical output.
//
// This package uses [github.com/goccy/go-graphviz] to rasterize the emitted
// DOT to SVG or PNG in process; no external Graphviz installation is
// needed.
package dot

import (
	"fmt"
	"strings"

	"github.com/efharkin/swc2dot/pkg/morph"
	"github.com/efharkin/swc2dot/pkg/styles"
	"github.com/efharkin/swc2dot/pkg/swc"
)

const indent = "    "

// Marshal renders the morphology graph as DOT text.
//
// Style blocks are emitted for every kind that has at least one
// compartment, in ascending kind-code order (undefined, soma, axon,
// dendrite, apical dendrite, custom). Within a block, compartment ids are
// ascending. Structural lines follow in ascending id order: an edge group
// for compartments with children (children in input file order) and a
// standalone declaration for leaves.
func Marshal(g *morph.Graph, reg *styles.Registry) string {
	var b strings.Builder
	b.Grow(64 * g.Len())

	b.WriteString("graph{")
	writeStyleBlocks(&b, g, reg)
	writeStructure(&b, g)
	b.WriteString("\n}\n")

	return b.String()
}

// writeStyleBlocks groups compartment ids by kind and emits one block per
// non-empty kind:
//
//	{
//	    node [shape=circle,style=filled];
//	    1; 2;
//	}
func writeStyleBlocks(b *strings.Builder, g *morph.Graph, reg *styles.Registry) {
	byKind := make(map[swc.Kind][]int, len(swc.Kinds))
	for _, id := range g.IDs() { // ascending, so groups stay sorted
		c, _ := g.Compartment(id)
		byKind[c.Kind] = append(byKind[c.Kind], id)
	}

	for _, kind := range swc.Kinds {
		ids := byKind[kind]
		if len(ids) == 0 {
			continue
		}

		b.WriteString("\n" + indent + "{")
		b.WriteString("\n" + indent + indent + reg.Resolve(kind).Attrs())
		b.WriteString("\n" + indent + indent)
		for i, id := range ids {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "%d;", id)
		}
		b.WriteString("\n" + indent + "}")
	}
}

// writeStructure emits one line per compartment in ascending id order.
// A compartment with children becomes an edge statement; a leaf becomes a
// standalone node declaration.
func writeStructure(b *strings.Builder, g *morph.Graph) {
	for _, id := range g.IDs() {
		b.WriteString("\n" + indent)
		children := g.Children(id)
		switch len(children) {
		case 0:
			fmt.Fprintf(b, "%d;", id)
		case 1:
			fmt.Fprintf(b, "%d -- %d;", id, children[0])
		default:
			parts := make([]string, len(children))
			for i, c := range children {
				parts[i] = fmt.Sprintf("%d", c)
			}
			fmt.Fprintf(b, "%d -- {%s};", id, strings.Join(parts, ", "))
		}
	}
}
