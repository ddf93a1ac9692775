package search

import (
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/optkit/knapp/pkg/knapp"
)

// node is one point in the branch-and-bound tree. A node owns its children
// outright; the parent link is non-owning and used only to reconstruct the
// fixed-assignment path back to the root. All fields except children are
// set at construction; children is set exactly once, to a pair.
type node struct {
	parent   *node
	children []*node // nil, or exactly two: x=0 first, x=1 second

	// variable is the index (1..n) this node fixes relative to its
	// parent; 0 marks the root.
	variable int
	value    int

	relax   knapp.Relaxation
	integer bool
}

func newNode(prob *knapp.Problem, parent *node, variable, value int, relax knapp.Relaxation) *node {
	n := &node{
		parent:   parent,
		variable: variable,
		value:    value,
		relax:    relax,
	}
	if relax.IsOptimal() {
		n.integer = true
		for _, x := range relax.Solution {
			if prob.IsFractional(x) {
				n.integer = false
				break
			}
		}
	}
	return n
}

// attach sets the children pair. Children are attached atomically: both or
// neither.
func (n *node) attach(left, right *node) {
	n.children = []*node{left, right}
}

func (n *node) depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// fixedAssignments rebuilds the full fixed-variable set by walking the
// parent chain to the root. No incremental state is kept between solves.
func (n *node) fixedAssignments() map[int]int {
	fixed := make(map[int]int, n.depth())
	for c := n; c.variable != 0; c = c.parent {
		fixed[c.variable] = c.value
	}
	return fixed
}

// fixedSet returns the set of variable indices fixed on the path from n to
// the root, as a bitset over 1..n.
func (n *node) fixedSet(nvars int) *bitset.BitSet {
	set := bitset.New(uint(nvars) + 1)
	for c := n; c.variable != 0; c = c.parent {
		set.Set(uint(c.variable))
	}
	return set
}

// classify decides the fate of a node against the current incumbent
// objective, in priority order: feasibility, optimality, bounds. The
// bounds comparison is strict; a node whose relaxation objective exactly
// matches the incumbent stays open.
func classify(n *node, lower float64) knapp.PruneReason {
	switch {
	case !n.relax.IsOptimal():
		return knapp.PruneFeasibility
	case n.integer:
		return knapp.PruneOptimality
	case n.relax.Objective < lower:
		return knapp.PruneBounds
	}
	return knapp.PruneNone
}

// selectOpenLeaf returns the first unpruned, unexpanded node found by a
// depth-first, left-child-first walk from n, or nil if the subtree is
// fully resolved. Cost is proportional to subtree size per call; an
// explicit open-leaf frontier would avoid the re-walk but must keep the
// same left-first tie-break to preserve search order.
func selectOpenLeaf(n *node, lower float64) *node {
	if len(n.children) == 0 {
		if classify(n, lower) == knapp.PruneNone {
			return n
		}
		return nil
	}
	for _, c := range n.children {
		if leaf := selectOpenLeaf(c, lower); leaf != nil {
			return leaf
		}
	}
	return nil
}

// minLeafObjective computes the subtree contribution to the global upper
// bound: the minimum relaxation objective over current leaves, where a
// resolved leaf (pruned, or integer-feasible) no longer constrains the
// bound and counts as +Inf. Internal nodes propagate the minimum of their
// two children.
func minLeafObjective(n *node, lower float64) float64 {
	if len(n.children) == 0 {
		if classify(n, lower) != knapp.PruneNone {
			return math.Inf(1)
		}
		return n.relax.Objective
	}
	return math.Min(minLeafObjective(n.children[0], lower), minLeafObjective(n.children[1], lower))
}
