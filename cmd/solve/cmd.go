package solve

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/optkit/knapp/pkg/knapp"
	"github.com/optkit/knapp/pkg/knapp/solver"
)

func NewSolveCommand() *cobra.Command {
	var (
		gapPrecision     float64
		integerPrecision float64
		maxIterations    int
		trace            bool
		verbose          bool
	)

	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Solves a 0/1 knapsack instance given as a json file",
		Long: `Solves a 0/1 knapsack instance given as a json file. For instance:

{
  "values":   [16, 22, 12, 8],
  "weights":  [5, 7, 4, 3],
  "capacity": 14
}
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], integerPrecision, gapPrecision, maxIterations, trace, verbose)
		},
	}

	cmd.Flags().Float64Var(&gapPrecision, "gap", 1e-3, "relative optimality gap tolerance")
	cmd.Flags().Float64Var(&integerPrecision, "precision", 1e-4, "integrality tolerance for relaxation values")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "cap on branchings, 0 for no cap")
	cmd.Flags().BoolVar(&trace, "trace", false, "print the search tree as it is explored")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	return cmd
}

func run(path string, integerPrecision, gapPrecision float64, maxIterations int, trace, verbose bool) error {
	instanceFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening instance file (%s): %w", path, err)
	}
	defer instanceFile.Close()

	instance, err := ReadInstance(instanceFile)
	if err != nil {
		return fmt.Errorf("error parsing instance file (%s): %w", path, err)
	}

	prob, err := knapp.NewProblem(instance.Values, instance.Weights, instance.Capacity, integerPrecision, gapPrecision)
	if err != nil {
		return err
	}

	options := []solver.Option{solver.WithMaxIterations(maxIterations)}
	if trace {
		options = append(options, solver.WithTracer(knapp.LoggingTracer{Writer: os.Stdout}))
	}
	if verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
		options = append(options, solver.WithLogger(logger))
	}

	so, err := solver.New(options...)
	if err != nil {
		return err
	}

	solution, err := so.Solve(context.Background(), prob)
	if err != nil {
		fmt.Printf("no solution found: %s\n", err)
		return nil
	}

	fmt.Printf("terminated: %s\n", solution.Stop())
	fmt.Printf("objective = %g (bounds [%g, %g], gap %g)\n",
		solution.Objective(), solution.LowerBound(), solution.UpperBound(), solution.Gap())
	for v, x := range solution.Incumbent() {
		fmt.Printf("x%d = %d\n", v+1, x)
	}
	return nil
}
