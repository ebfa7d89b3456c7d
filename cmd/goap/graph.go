package main

import (
	"github.com/aretw0/goap/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [catalogue]",
	Short: "Export the action dependency graph",
	Long: `Outputs a Mermaid diagram (graph TD) with an edge from every action to the
actions whose preconditions it raises. With --goal, the plan from --start is highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Graph(cmd.Context(), planOptions(cmd, args), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addProblemFlags(graphCmd)
}
