package knapp

import (
	"context"
	"fmt"
)

// Problem is an immutable description of a 0/1 knapsack instance together
// with the numeric tolerances the search operates under. A Problem is
// created once per run and passed explicitly into every operation that
// needs it; there is no package-level instance state.
//
// Variables are numbered 1..n. Index 0 is reserved as the root sentinel in
// the search tree and never identifies a variable.
type Problem struct {
	values           []int
	weights          []int
	capacity         int
	integerPrecision float64
	gapPrecision     float64
}

// NewProblem validates and constructs a Problem. The input slices are
// copied; callers may reuse them afterwards.
func NewProblem(values, weights []int, capacity int, integerPrecision, gapPrecision float64) (*Problem, error) {
	if len(values) == 0 {
		return nil, ErrEmptyProblem
	}
	if len(values) != len(weights) {
		return nil, fmt.Errorf("%w: %d values, %d weights", ErrLengthMismatch, len(values), len(weights))
	}
	for i, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("%w: value of variable %d is %d", ErrNegativeValue, i+1, v)
		}
	}
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: weight of variable %d is %d", ErrNegativeWeight, i+1, w)
		}
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCapacity, capacity)
	}
	if integerPrecision <= 0 || integerPrecision >= 0.5 {
		return nil, fmt.Errorf("%w: %g not in (0, 0.5)", ErrIntegerPrecision, integerPrecision)
	}
	if gapPrecision <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrGapPrecision, gapPrecision)
	}
	p := &Problem{
		values:           make([]int, len(values)),
		weights:          make([]int, len(weights)),
		capacity:         capacity,
		integerPrecision: integerPrecision,
		gapPrecision:     gapPrecision,
	}
	copy(p.values, values)
	copy(p.weights, weights)
	return p, nil
}

// Len returns the number of variables n.
func (p *Problem) Len() int {
	return len(p.values)
}

// Value returns the objective coefficient of variable v, v in 1..n.
func (p *Problem) Value(v int) int {
	return p.values[v-1]
}

// Weight returns the capacity consumption of variable v, v in 1..n.
func (p *Problem) Weight(v int) int {
	return p.weights[v-1]
}

func (p *Problem) Capacity() int {
	return p.capacity
}

func (p *Problem) IntegerPrecision() float64 {
	return p.integerPrecision
}

func (p *Problem) GapPrecision() float64 {
	return p.gapPrecision
}

// IsIntegral reports whether a relaxation value counts as integral under
// the instance's integer precision: x <= tol or x >= 1-tol.
func (p *Problem) IsIntegral(x float64) bool {
	return x <= p.integerPrecision || x >= 1-p.integerPrecision
}

// IsFractional reports whether a relaxation value lies strictly between the
// integer precision thresholds.
func (p *Problem) IsFractional(x float64) bool {
	return !p.IsIntegral(x)
}

// Feasibility is the outcome of a single relaxation solve. It is an
// explicit value inspected by the pruning classifier, never control flow.
type Feasibility int

const (
	// FeasibilityOptimal means the oracle found an optimal point of the
	// relaxation under the given fixings.
	FeasibilityOptimal Feasibility = iota
	// FeasibilityInfeasible means the relaxation has no feasible point
	// under the given fixings.
	FeasibilityInfeasible
	// FeasibilityFailure means the oracle failed for any other reason
	// (numerical trouble, non-convergence, bad input).
	FeasibilityFailure
)

func (f Feasibility) String() string {
	switch f {
	case FeasibilityOptimal:
		return "optimal"
	case FeasibilityInfeasible:
		return "infeasible"
	case FeasibilityFailure:
		return "failure"
	}
	return fmt.Sprintf("feasibility(%d)", int(f))
}

// Relaxation is the result of one continuous relaxation solve. Objective
// and Solution are meaningful only when Feasibility is FeasibilityOptimal;
// Solution has length n with Solution[v-1] the value of variable v.
type Relaxation struct {
	Feasibility Feasibility
	Objective   float64
	Solution    []float64
}

// IsOptimal reports whether the solve produced an optimal point.
func (r Relaxation) IsOptimal() bool {
	return r.Feasibility == FeasibilityOptimal
}

// Oracle solves the continuous relaxation of a Problem under a set of
// variable fixings:
//
//	max   sum(values[v] * x[v])
//	s.t.  sum(weights[v] * x[v]) <= capacity
//	      0 <= x[v] <= 1
//	      x[v] = fixed[v]  for every v in fixed
//
// fixed maps variable numbers (1..n) to 0 or 1. An Oracle must be
// deterministic: identical input yields an identical Relaxation. The call
// blocks until the solve completes; implementations should honor ctx
// cancellation where the underlying solver allows it.
type Oracle interface {
	SolveRelaxation(ctx context.Context, prob *Problem, fixed map[int]int) Relaxation
}

// StopReason records why a search left the exploring loop.
type StopReason int

const (
	// StopGapClosed means the relative optimality gap reached the
	// instance's gap precision.
	StopGapClosed StopReason = iota
	// StopExhausted means no open node remained; the enumeration is
	// complete and the incumbent is proven optimal.
	StopExhausted
	// StopIterationLimit means the configured iteration ceiling was hit.
	StopIterationLimit
	// StopCancelled means the caller's context was cancelled.
	StopCancelled
)

func (s StopReason) String() string {
	switch s {
	case StopGapClosed:
		return "gap closed"
	case StopExhausted:
		return "tree exhausted"
	case StopIterationLimit:
		return "iteration limit"
	case StopCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("stop(%d)", int(s))
}

// PruneReason classifies a node against the current search status. The
// values are ordered by evaluation priority.
type PruneReason int

const (
	// PruneNone marks an open, branchable node.
	PruneNone PruneReason = iota
	// PruneFeasibility marks a node whose relaxation was not optimal.
	PruneFeasibility
	// PruneOptimality marks an integer-feasible node; it is a completed
	// leaf and is never branched further.
	PruneOptimality
	// PruneBounds marks a node whose relaxation objective is strictly
	// below the incumbent objective.
	PruneBounds
)

func (r PruneReason) String() string {
	switch r {
	case PruneNone:
		return "open"
	case PruneFeasibility:
		return "feasibility"
	case PruneOptimality:
		return "optimality"
	case PruneBounds:
		return "bounds"
	}
	return fmt.Sprintf("prune(%d)", int(r))
}
