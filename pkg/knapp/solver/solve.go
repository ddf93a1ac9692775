package solver

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/optkit/knapp/internal/relax"
	"github.com/optkit/knapp/internal/search"
	"github.com/optkit/knapp/pkg/knapp"
)

// Solution is the terminal state of one search: the final bounds, the
// incumbent, and why the search stopped. It is read-only.
type Solution struct {
	result search.Result
	n      int
}

// UpperBound is the best known upper bound on the optimum.
func (s *Solution) UpperBound() float64 {
	return s.result.UpperBound
}

// LowerBound is the objective of the incumbent, or -Inf if none exists.
func (s *Solution) LowerBound() float64 {
	return s.result.LowerBound
}

// Objective is the incumbent objective; identical to LowerBound.
func (s *Solution) Objective() float64 {
	return s.result.LowerBound
}

// Gap is the relative optimality gap at termination.
func (s *Solution) Gap() float64 {
	return s.result.Gap
}

// Incumbent returns the best integer solution as a 0/1 vector of length n,
// or nil if no incumbent was found.
func (s *Solution) Incumbent() []int {
	if s.result.Incumbent == nil {
		return nil
	}
	out := make([]int, s.n)
	copy(out, s.result.Incumbent)
	return out
}

// Items returns the variable numbers (1..n) selected by the incumbent.
func (s *Solution) Items() []int {
	var items []int
	for i, x := range s.result.Incumbent {
		if x == 1 {
			items = append(items, i+1)
		}
	}
	return items
}

// Stop reports why the search terminated.
func (s *Solution) Stop() knapp.StopReason {
	return s.result.Stop
}

// Iterations is the number of branchings performed.
func (s *Solution) Iterations() int {
	return s.result.Iterations
}

// NodeCount is the total number of tree nodes created, root included.
func (s *Solution) NodeCount() int {
	return s.result.Nodes
}

// Solver solves 0/1 knapsack instances by branch-and-bound over a
// relaxation oracle. The zero configuration uses the built-in greedy
// relaxation oracle, no tracing, and no logging.
type Solver struct {
	oracle        knapp.Oracle
	tracer        knapp.Tracer
	logger        zerolog.Logger
	maxIterations int
}

func New(options ...Option) (*Solver, error) {
	s := Solver{logger: zerolog.Nop()}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *Solver) error

// WithOracle replaces the relaxation oracle.
func WithOracle(o knapp.Oracle) Option {
	return func(s *Solver) error {
		s.oracle = o
		return nil
	}
}

// WithTracer attaches a Tracer observing nodes and status per iteration.
func WithTracer(t knapp.Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

// WithLogger attaches a structured logger to the search driver.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Solver) error {
		s.logger = l
		return nil
	}
}

// WithMaxIterations caps the number of branchings; 0 means no cap. The
// cap is an additional exit condition of the exploring loop and does not
// alter bound semantics.
func WithMaxIterations(n int) Option {
	return func(s *Solver) error {
		s.maxIterations = n
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.oracle == nil {
			s.oracle = relax.NewDantzig()
		}
		return nil
	},
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = knapp.DefaultTracer{}
		}
		return nil
	},
}

// Solve runs the search to termination. A non-optimal root relaxation or a
// branching step with no eligible fractional variable is fatal and
// produces an error instead of a Solution. Cancellation of ctx stops the
// search between iterations; the partial Solution records StopCancelled.
func (s *Solver) Solve(ctx context.Context, prob *knapp.Problem) (*Solution, error) {
	driver := search.NewDriver(prob, s.oracle, s.tracer, s.logger, s.maxIterations)
	result, err := driver.Run(ctx)
	if err != nil {
		return nil, err
	}
	return &Solution{result: result, n: prob.Len()}, nil
}
