package search

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// status is the global search bookkeeping: best bounds, the incumbent, and
// the root of the owned tree. It is mutated once per driver iteration and
// never shared across writers.
type status struct {
	upper float64
	lower float64

	// incumbent is the rounded 0/1 vector of the best integer-feasible
	// node found so far, as a bitset over 1..n; nil until one exists.
	incumbent *bitset.BitSet

	root       *node
	iterations int
	nodes      int
}

func newStatus(root *node) *status {
	return &status{
		upper: math.Inf(1),
		lower: math.Inf(-1),
		root:  root,
		nodes: 1,
	}
}

// offer installs n as the incumbent if it is integer-feasible and strictly
// improves the lower bound. The lower bound is monotone non-decreasing.
func (s *status) offer(nvars int, n *node) bool {
	if !n.integer || n.relax.Objective <= s.lower {
		return false
	}
	s.lower = n.relax.Objective
	s.incumbent = bitset.New(uint(nvars) + 1)
	for v := 1; v <= nvars; v++ {
		// round half up
		if n.relax.Solution[v-1] >= 0.5 {
			s.incumbent.Set(uint(v))
		}
	}
	return true
}

// recomputeUpper rebuilds the upper bound from the current leaves. Once
// every leaf is resolved the minimum is +Inf; the driver closes the bounds
// when it detects the exhausted tree.
func (s *status) recomputeUpper() {
	s.upper = minLeafObjective(s.root, s.lower)
}

// gap is the relative distance between the bounds. Before an incumbent
// exists the lower bound is -Inf and the result is +Inf or NaN; either
// compares false against any tolerance, so the search cannot terminate
// before a first incumbent. Equal bounds mean proven optimality and a
// zero gap, even when both are zero.
func (s *status) gap() float64 {
	if s.incumbent != nil && s.upper == s.lower {
		return 0
	}
	return (s.upper - s.lower) / s.upper
}

// incumbentVector exports the incumbent as a 0/1 slice of length n, or nil
// if no incumbent exists.
func (s *status) incumbentVector(nvars int) []int {
	if s.incumbent == nil {
		return nil
	}
	out := make([]int, nvars)
	for v := 1; v <= nvars; v++ {
		if s.incumbent.Test(uint(v)) {
			out[v-1] = 1
		}
	}
	return out
}
