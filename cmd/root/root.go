package root

import (
	"github.com/spf13/cobra"

	"github.com/optkit/knapp/cmd/solve"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "knapp",
		Short: "Knapp is a branch-and-bound 0/1 knapsack solver",
		Long: `A branch-and-bound 0/1 knapsack solver library and CLI written in Go.
For more information visit https://github.com/optkit/knapp`,
	}

	// add sub-commands
	rootCmd.AddCommand(solve.NewSolveCommand())

	return rootCmd
}
