// Package morph assembles parsed SWC records into a validated rooted forest.
//
// The parent-pointer list in an SWC file is an implicit tree. Build
// materializes it as an explicit adjacency structure (id → ordered child
// list) because downstream output needs grouping by parent and by kind, not
// chain-by-chain pointer walks.
//
// Construction is two-pass: all ids are collected before parent references
// are validated, since a parent may legally appear later in the file than
// its children. The parent relation is caller-supplied data, so the forest
// invariant (acyclic, single parent) is checked explicitly.
package morph

import (
	"fmt"
	"slices"

	"github.com/efharkin/swc2dot/pkg/swc"
)

// DuplicateIDError reports two records sharing one compartment id.
type DuplicateIDError struct {
	ID int
}

// Error implements the error interface.
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("more than one compartment with id %d", e.ID)
}

// UnknownParentError reports a record whose parent id does not exist
// anywhere in the input.
type UnknownParentError struct {
	Child  int
	Parent int
}

// Error implements the error interface.
func (e *UnknownParentError) Error() string {
	return fmt.Sprintf("compartment %d references unknown parent %d", e.Child, e.Parent)
}

// CycleDetectedError reports a compartment whose ancestor chain loops back
// on itself instead of terminating at a root.
type CycleDetectedError struct {
	ID int
}

// Error implements the error interface.
func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("compartment %d is part of a parent cycle", e.ID)
}

// Graph is a validated forest of compartments keyed by id.
//
// A Graph is built once by [Build] and read-only afterward. Child lists
// preserve input file order among siblings; id listings are ascending.
type Graph struct {
	compartments map[int]swc.Compartment
	children     map[int][]int
	ids          []int // ascending
	roots        []int // ascending
}

// Build constructs a Graph from the complete ordered record sequence.
//
// The first pass indexes every record by id and fails with
// [*DuplicateIDError] on a repeated id. The second pass links each non-root
// record to its parent, preserving file order among siblings, and fails
// with [*UnknownParentError] when the parent id is absent. Finally every
// ancestor chain is walked with a visited-set guard; a chain that revisits
// itself fails with [*CycleDetectedError].
//
// Records with a negative parent are roots; a file may contain any number
// of them.
func Build(records []swc.Compartment) (*Graph, error) {
	g := &Graph{
		compartments: make(map[int]swc.Compartment, len(records)),
		children:     make(map[int][]int),
	}

	for _, rec := range records {
		if _, exists := g.compartments[rec.ID]; exists {
			return nil, &DuplicateIDError{ID: rec.ID}
		}
		g.compartments[rec.ID] = rec
		g.ids = append(g.ids, rec.ID)
	}
	slices.Sort(g.ids)

	for _, rec := range records {
		if rec.IsRoot() {
			g.roots = append(g.roots, rec.ID)
			continue
		}
		if _, ok := g.compartments[rec.Parent]; !ok {
			return nil, &UnknownParentError{Child: rec.ID, Parent: rec.Parent}
		}
		g.children[rec.Parent] = append(g.children[rec.Parent], rec.ID)
	}
	slices.Sort(g.roots)

	if err := g.detectCycles(); err != nil {
		return nil, err
	}
	return g, nil
}

// detectCycles walks every ancestor chain toward its root with a visited
// set. The walk is bounded by the node count, so a chain that has not
// reached a root by then has revisited itself.
func (g *Graph) detectCycles() error {
	state := make(map[int]int, len(g.compartments)) // 0 unvisited, 1 on chain, 2 cleared

	for _, id := range g.ids {
		var chain []int
		cur := id
		for state[cur] == 0 {
			state[cur] = 1
			chain = append(chain, cur)
			rec := g.compartments[cur]
			if rec.IsRoot() {
				break
			}
			cur = rec.Parent
			if state[cur] == 1 {
				return &CycleDetectedError{ID: cur}
			}
		}
		for _, v := range chain {
			state[v] = 2
		}
	}
	return nil
}

// Compartment returns the record for id and whether it exists.
func (g *Graph) Compartment(id int) (swc.Compartment, bool) {
	c, ok := g.compartments[id]
	return c, ok
}

// Children returns the child ids of id in input file order.
// The returned slice is a read-only view; do not modify it.
func (g *Graph) Children(id int) []int { return g.children[id] }

// IDs returns all compartment ids in ascending order.
// The returned slice is a read-only view; do not modify it.
func (g *Graph) IDs() []int { return g.ids }

// Roots returns the ids of all root compartments in ascending order.
func (g *Graph) Roots() []int { return g.roots }

// Len returns the number of compartments in the graph.
func (g *Graph) Len() int { return len(g.compartments) }
