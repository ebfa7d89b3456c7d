package main

import (
	"fmt"

	"github.com/aretw0/goap/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalogue]",
	Short: "Check the catalogue for consistency",
	Long: `Reports malformed costs and actions that can never fire from the start state.
With --goal, also reports goal conditions that no sequence of actions can reach.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.Validate(planOptions(cmd, args)); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Catalogue is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addProblemFlags(validateCmd)
}
