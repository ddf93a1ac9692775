package search

import (
	"context"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/optkit/knapp/pkg/knapp"
)

// randomInstance derives a small instance from a seed so that gopter can
// shrink over plain integers.
func randomInstance(n int, seed int64) ([]int, []int, int) {
	rng := rand.New(rand.NewSource(seed))
	values := make([]int, n)
	weights := make([]int, n)
	total := 0
	for i := range values {
		values[i] = rng.Intn(30) + 1
		weights[i] = rng.Intn(10) + 1
		total += weights[i]
	}
	capacity := rng.Intn(total + 1)
	return values, weights, capacity
}

func exhaustiveOptimum(values, weights []int, capacity int) float64 {
	best := 0.0
	for mask := 0; mask < 1<<len(values); mask++ {
		value, weight := 0, 0
		for i := range values {
			if mask&(1<<i) != 0 {
				value += values[i]
				weight += weights[i]
			}
		}
		if weight <= capacity && float64(value) > best {
			best = float64(value)
		}
	}
	return best
}

func runInstance(t *testing.T, values, weights []int, capacity int, tracer knapp.Tracer) (Result, error) {
	t.Helper()
	prob, err := knapp.NewProblem(values, weights, capacity, 1e-6, 1e-9)
	if err != nil {
		t.Fatalf("building problem: %v", err)
	}
	if tracer == nil {
		tracer = knapp.DefaultTracer{}
	}
	return newTestDriver(prob, nil, tracer, 0).Run(context.Background())
}

func TestSearchProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	properties.Property("exhausted searches prove the exact optimum", prop.ForAll(
		func(n int, seed int64) bool {
			values, weights, capacity := randomInstance(n, seed)
			result, err := runInstance(t, values, weights, capacity, nil)
			if err != nil {
				return false
			}
			if result.Stop != knapp.StopExhausted && result.Stop != knapp.StopGapClosed {
				return false
			}
			// the incumbent must be a feasible 0/1 vector matching the
			// reported lower bound
			value, weight := 0, 0
			for i, x := range result.Incumbent {
				if x != 0 && x != 1 {
					return false
				}
				value += x * values[i]
				weight += x * weights[i]
			}
			if weight > capacity || math.Abs(float64(value)-result.LowerBound) > 1e-6 {
				return false
			}
			if result.Stop == knapp.StopExhausted {
				return math.Abs(result.LowerBound-exhaustiveOptimum(values, weights, capacity)) < 1e-6
			}
			return true
		},
		gen.IntRange(1, 7),
		gen.Int64(),
	))

	properties.Property("repeated runs are identical", prop.ForAll(
		func(n int, seed int64) bool {
			values, weights, capacity := randomInstance(n, seed)
			first, err1 := runInstance(t, values, weights, capacity, nil)
			second, err2 := runInstance(t, values, weights, capacity, nil)
			if (err1 == nil) != (err2 == nil) {
				return false
			}
			return reflect.DeepEqual(first, second)
		},
		gen.IntRange(1, 7),
		gen.Int64(),
	))

	properties.Property("lower bound never decreases and never crosses upper", prop.ForAll(
		func(n int, seed int64) bool {
			values, weights, capacity := randomInstance(n, seed)
			tracer := &recordingTracer{}
			if _, err := runInstance(t, values, weights, capacity, tracer); err != nil {
				return false
			}
			lower := math.Inf(-1)
			for _, e := range tracer.statuses {
				if e.LowerBound < lower || e.UpperBound < e.LowerBound {
					return false
				}
				lower = e.LowerBound
			}
			return true
		},
		gen.IntRange(1, 7),
		gen.Int64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestTreeInvariants drives the exploration loop by hand so that the tree
// itself can be inspected: every node has zero or two children, and no
// variable index repeats on any root-to-node path.
func TestTreeInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every node has 0 or 2 children and a duplicate-free path", prop.ForAll(
		func(n int, seed int64) bool {
			values, weights, capacity := randomInstance(n, seed)
			prob, err := knapp.NewProblem(values, weights, capacity, 1e-6, 1e-9)
			if err != nil {
				return false
			}
			d := newTestDriver(prob, nil, nil, 0)
			root := newNode(prob, nil, 0, 0, d.oracle.SolveRelaxation(context.Background(), prob, map[int]int{}))
			if !root.relax.IsOptimal() {
				return false
			}
			st := newStatus(root)
			for {
				leaf := selectOpenLeaf(root, st.lower)
				if leaf == nil {
					break
				}
				v, err := selectBranchingVariable(prob, leaf)
				if err != nil {
					return false
				}
				left, right := branch(context.Background(), prob, d.oracle, leaf, v)
				st.offer(prob.Len(), left)
				st.offer(prob.Len(), right)
			}
			return checkTree(root, map[int]bool{})
		},
		gen.IntRange(1, 6),
		gen.Int64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func checkTree(n *node, onPath map[int]bool) bool {
	if len(n.children) != 0 && len(n.children) != 2 {
		return false
	}
	if n.variable != 0 {
		if onPath[n.variable] {
			return false
		}
		onPath[n.variable] = true
		defer delete(onPath, n.variable)
	}
	for _, c := range n.children {
		if c.parent != n {
			return false
		}
		if !checkTree(c, onPath) {
			return false
		}
	}
	return true
}
