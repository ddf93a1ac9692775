package knapp

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyProblem indicates an instance with no variables.
	ErrEmptyProblem = errors.New("knapp: problem must have at least one variable")
	// ErrLengthMismatch indicates values and weights of differing lengths.
	ErrLengthMismatch = errors.New("knapp: values and weights must have the same length")
	// ErrNegativeValue indicates a variable with a negative objective
	// coefficient; a negative bound would flip the sign of the relative gap.
	ErrNegativeValue = errors.New("knapp: values must be non-negative")
	// ErrNegativeWeight indicates a variable with negative capacity consumption.
	ErrNegativeWeight = errors.New("knapp: weights must be non-negative")
	// ErrNegativeCapacity indicates a negative knapsack capacity.
	ErrNegativeCapacity = errors.New("knapp: capacity must be non-negative")
	// ErrIntegerPrecision indicates an integer precision outside (0, 0.5).
	ErrIntegerPrecision = errors.New("knapp: integer precision must lie in (0, 0.5)")
	// ErrGapPrecision indicates a non-positive gap precision.
	ErrGapPrecision = errors.New("knapp: gap precision must be positive")

	// ErrNoBranchingVariable indicates a fractional relaxation solution in
	// which no unfixed fractional variable exists. There is no defined
	// recovery; the search step that hits it fails.
	ErrNoBranchingVariable = errors.New("knapp: fractional relaxation with no eligible branching variable")
)

// RootRelaxationError is returned when the root relaxation does not solve
// to optimality. It is fatal for the whole run: without a root bound no
// incumbent can be established.
type RootRelaxationError struct {
	Feasibility Feasibility
}

func (e *RootRelaxationError) Error() string {
	return fmt.Sprintf("knapp: root relaxation %s", e.Feasibility)
}
