package main

import (
	"os"
	"time"

	"github.com/aretw0/goap/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var planCmd = &cobra.Command{
	Use:   "plan [catalogue]",
	Short: "Find the cheapest plan from a start state to a goal",
	Long: `Searches the catalogue and prints the plan as a table of actions.
On a terminal the table is rendered; with --json the plan is printed as JSON.
A goal that cannot be reached prints "No plan" and is not an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		tty := term.IsTerminal(int(os.Stdout.Fd()))
		return cli.Plan(sigCtx, planOptions(cmd, args), cmd.OutOrStdout(), tty)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	addProblemFlags(planCmd)
	planCmd.Flags().Bool("json", false, "Print the plan as JSON")
	planCmd.Flags().Bool("mermaid", false, "Print the dependency graph with the plan highlighted")
	planCmd.Flags().Duration("timeout", 30*time.Second, "Abandon the search after this long (0 disables)")
}
