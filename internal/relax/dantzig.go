// Package relax provides the default relaxation oracle: the continuous
// 0/1 knapsack relaxation has a closed-form optimum, found by filling the
// remaining capacity greedily in order of value density (Dantzig's rule)
// and taking at most one fractional item.
package relax

import (
	"context"
	"math"
	"sort"

	"github.com/optkit/knapp/pkg/knapp"
)

type Dantzig struct{}

var _ knapp.Oracle = (*Dantzig)(nil)

func NewDantzig() *Dantzig {
	return &Dantzig{}
}

// SolveRelaxation solves max sum(values*x) s.t. sum(weights*x) <= capacity,
// 0 <= x <= 1, under the given fixings. It is deterministic: density ties
// break toward the lower variable index.
func (*Dantzig) SolveRelaxation(_ context.Context, prob *knapp.Problem, fixed map[int]int) knapp.Relaxation {
	n := prob.Len()
	sol := make([]float64, n)
	remaining := float64(prob.Capacity())
	objective := 0.0

	for v, x := range fixed {
		if v < 1 || v > n || (x != 0 && x != 1) {
			return knapp.Relaxation{Feasibility: knapp.FeasibilityFailure}
		}
	}
	// accumulate in index order so that float rounding is reproducible
	for v := 1; v <= n; v++ {
		if fixed[v] == 1 {
			sol[v-1] = 1
			objective += float64(prob.Value(v))
			remaining -= float64(prob.Weight(v))
		}
	}
	if remaining < 0 {
		return knapp.Relaxation{Feasibility: knapp.FeasibilityInfeasible}
	}

	free := make([]int, 0, n)
	for v := 1; v <= n; v++ {
		if _, ok := fixed[v]; !ok && prob.Value(v) > 0 {
			free = append(free, v)
		}
	}
	sort.Slice(free, func(i, j int) bool {
		di, dj := density(prob, free[i]), density(prob, free[j])
		if di != dj {
			return di > dj
		}
		return free[i] < free[j]
	})

	for _, v := range free {
		w := float64(prob.Weight(v))
		if w <= remaining {
			sol[v-1] = 1
			objective += float64(prob.Value(v))
			remaining -= w
			continue
		}
		if remaining > 0 {
			frac := remaining / w
			sol[v-1] = frac
			objective += frac * float64(prob.Value(v))
		}
		break
	}

	return knapp.Relaxation{
		Feasibility: knapp.FeasibilityOptimal,
		Objective:   objective,
		Solution:    sol,
	}
}

func density(prob *knapp.Problem, v int) float64 {
	w := prob.Weight(v)
	if w == 0 {
		return math.Inf(1)
	}
	return float64(prob.Value(v)) / float64(w)
}
