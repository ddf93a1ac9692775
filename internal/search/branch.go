package search

import (
	"context"
	"fmt"

	"github.com/optkit/knapp/pkg/knapp"
)

// selectBranchingVariable picks the smallest-indexed variable whose
// relaxation value is fractional and which is not already fixed on the
// path from n to the root. A fractional solution with no such index is a
// precision edge case with no defined recovery; it is reported, never
// silently skipped.
func selectBranchingVariable(prob *knapp.Problem, n *node) (int, error) {
	fixed := n.fixedSet(prob.Len())
	for v := 1; v <= prob.Len(); v++ {
		if fixed.Test(uint(v)) {
			continue
		}
		if prob.IsFractional(n.relax.Solution[v-1]) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: node at depth %d", knapp.ErrNoBranchingVariable, n.depth())
}

// branch expands an open leaf on variable v: both children are created
// unconditionally, the x=0 child first, each solved from scratch with the
// full inherited fixing set plus the new one, and attached as a pair.
func branch(ctx context.Context, prob *knapp.Problem, oracle knapp.Oracle, n *node, v int) (left, right *node) {
	for _, value := range []int{0, 1} {
		fixed := n.fixedAssignments()
		fixed[v] = value
		child := newNode(prob, n, v, value, oracle.SolveRelaxation(ctx, prob, fixed))
		if value == 0 {
			left = child
		} else {
			right = child
		}
	}
	n.attach(left, right)
	return left, right
}
