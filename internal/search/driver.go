package search

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/optkit/knapp/pkg/knapp"
)

// Driver runs the branch-and-bound state machine: Init (root relaxation),
// Exploring (select, branch, update bounds), Terminated. The search is
// strictly single-threaded; every oracle call blocks the loop.
type Driver struct {
	prob          *knapp.Problem
	oracle        knapp.Oracle
	tracer        knapp.Tracer
	log           zerolog.Logger
	maxIterations int
}

func NewDriver(prob *knapp.Problem, oracle knapp.Oracle, tracer knapp.Tracer, log zerolog.Logger, maxIterations int) *Driver {
	return &Driver{
		prob:          prob,
		oracle:        oracle,
		tracer:        tracer,
		log:           log,
		maxIterations: maxIterations,
	}
}

// Result is the terminal search status.
type Result struct {
	UpperBound float64
	LowerBound float64
	Gap        float64
	Incumbent  []int
	Stop       knapp.StopReason
	Iterations int
	Nodes      int
}

// Run executes the search to termination. Errors are fatal for the whole
// run: a non-optimal root relaxation, or a fractional solution with no
// eligible branching variable. Everything else ends in a Result.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	root := newNode(d.prob, nil, 0, 0, d.oracle.SolveRelaxation(ctx, d.prob, map[int]int{}))
	if !root.relax.IsOptimal() {
		return Result{}, &knapp.RootRelaxationError{Feasibility: root.relax.Feasibility}
	}
	st := newStatus(root)
	d.traceNode(root)

	if root.integer {
		// The root relaxation is already integral; no branching needed.
		st.offer(d.prob.Len(), root)
		st.upper = st.lower
		d.log.Info().Float64("objective", st.lower).Msg("root relaxation integral")
		return d.terminate(st, knapp.StopGapClosed), nil
	}

	for {
		if ctx.Err() != nil {
			return d.terminate(st, knapp.StopCancelled), nil
		}
		if d.maxIterations > 0 && st.iterations >= d.maxIterations {
			return d.terminate(st, knapp.StopIterationLimit), nil
		}

		leaf := selectOpenLeaf(st.root, st.lower)
		if leaf == nil {
			// Enumeration complete: the incumbent is proven optimal,
			// so the bounds meet.
			if st.incumbent != nil {
				st.upper = st.lower
			}
			return d.terminate(st, knapp.StopExhausted), nil
		}

		v, err := selectBranchingVariable(d.prob, leaf)
		if err != nil {
			return Result{}, err
		}

		st.iterations++
		left, right := branch(ctx, d.prob, d.oracle, leaf, v)
		st.nodes += 2
		for _, child := range []*node{left, right} {
			d.traceNode(child)
			st.offer(d.prob.Len(), child)
		}
		st.recomputeUpper()

		gap := st.gap()
		d.tracer.TraceStatus(knapp.StatusEvent{
			Iteration:  st.iterations,
			UpperBound: st.upper,
			LowerBound: st.lower,
			Gap:        gap,
			Nodes:      st.nodes,
		})
		d.log.Debug().
			Int("iteration", st.iterations).
			Int("variable", v).
			Int("depth", leaf.depth()).
			Float64("upper", st.upper).
			Float64("lower", st.lower).
			Float64("gap", gap).
			Msg("branched")

		if gap <= d.prob.GapPrecision() {
			return d.terminate(st, knapp.StopGapClosed), nil
		}
	}
}

func (d *Driver) terminate(st *status, stop knapp.StopReason) Result {
	d.log.Info().
		Stringer("stop", stop).
		Int("iterations", st.iterations).
		Int("nodes", st.nodes).
		Float64("upper", st.upper).
		Float64("lower", st.lower).
		Msg("search terminated")
	return Result{
		UpperBound: st.upper,
		LowerBound: st.lower,
		Gap:        st.gap(),
		Incumbent:  st.incumbentVector(d.prob.Len()),
		Stop:       stop,
		Iterations: st.iterations,
		Nodes:      st.nodes,
	}
}

func (d *Driver) traceNode(n *node) {
	d.tracer.TraceNode(knapp.NodeEvent{
		Depth:           n.depth(),
		Variable:        n.variable,
		Value:           n.value,
		Feasibility:     n.relax.Feasibility,
		Objective:       n.relax.Objective,
		IntegerFeasible: n.integer,
	})
}
