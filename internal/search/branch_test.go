package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optkit/knapp/pkg/knapp"
)

// stubOracle scripts relaxation results by fixed-assignment set.
type stubOracle struct {
	results map[string]knapp.Relaxation
}

func fixedKey(fixed map[int]int) string {
	parts := make([]string, 0, len(fixed))
	for v, x := range fixed {
		parts = append(parts, fmt.Sprintf("%d=%d", v, x))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (o *stubOracle) SolveRelaxation(_ context.Context, _ *knapp.Problem, fixed map[int]int) knapp.Relaxation {
	r, ok := o.results[fixedKey(fixed)]
	if !ok {
		return knapp.Relaxation{Feasibility: knapp.FeasibilityFailure}
	}
	return r
}

func TestSelectBranchingVariable(t *testing.T) {
	prob := testProblem(t, 4)

	t.Run("smallest fractional index wins", func(t *testing.T) {
		n := newNode(prob, nil, 0, 0, optimal(10, 1, 0.5, 0.3, 0))
		v, err := selectBranchingVariable(prob, n)
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("variables fixed on the path are skipped", func(t *testing.T) {
		root := newNode(prob, nil, 0, 0, optimal(10, 1, 0.5, 0.3, 0))
		n := newNode(prob, root, 2, 1, optimal(9, 1, 0.5, 0.3, 0))
		v, err := selectBranchingVariable(prob, n)
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("no eligible variable is an error", func(t *testing.T) {
		root := newNode(prob, nil, 0, 0, optimal(10, 1, 0.5, 1, 0))
		n := newNode(prob, root, 2, 1, optimal(9, 1, 0.5, 1, 0))
		_, err := selectBranchingVariable(prob, n)
		assert.ErrorIs(t, err, knapp.ErrNoBranchingVariable)
	})
}

func TestBranchCreatesBothChildren(t *testing.T) {
	prob := testProblem(t, 2)
	oracle := &stubOracle{results: map[string]knapp.Relaxation{
		"1=0": optimal(8, 0, 0.5),
		"1=1": {Feasibility: knapp.FeasibilityInfeasible},
	}}

	root := newNode(prob, nil, 0, 0, optimal(10, 0.5, 0.5))
	left, right := branch(context.Background(), prob, oracle, root, 1)

	// attached atomically as a pair, x=0 first
	require.Len(t, root.children, 2)
	assert.Same(t, left, root.children[0])
	assert.Same(t, right, root.children[1])

	assert.Equal(t, 1, left.variable)
	assert.Equal(t, 0, left.value)
	assert.Equal(t, map[int]int{1: 0}, left.fixedAssignments())
	assert.Equal(t, 8.0, left.relax.Objective)

	assert.Equal(t, 1, right.variable)
	assert.Equal(t, 1, right.value)
	assert.Equal(t, map[int]int{1: 1}, right.fixedAssignments())
	assert.Equal(t, knapp.FeasibilityInfeasible, right.relax.Feasibility)

	assert.Same(t, root, left.parent)
	assert.Same(t, root, right.parent)
}
