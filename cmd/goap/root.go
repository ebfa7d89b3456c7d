package main

import (
	"fmt"
	"os"

	"github.com/aretw0/goap/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goap",
	Short: "goap is a goal oriented action planner",
	Long: `goap searches a catalogue of actions (preconditions, effects and cost) for
the cheapest sequence that turns a start state into a goal state.

A catalogue is either a single JSON/YAML file or a directory with one action per document.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("catalogue", ".", "Catalogue file or directory")
	rootCmd.PersistentFlags().String("config", "", "Planner configuration file (default $"+cli.ConfigEnv+")")
	rootCmd.PersistentFlags().Bool("debug", false, "Log search steps to stderr")

	// Search overrides (win over the configuration file)
	rootCmd.PersistentFlags().Int("cutoff", 0, "Iteration budget, 0 disables it (default from config, else 1000)")
	rootCmd.PersistentFlags().Int("max-frontier", 0, "Keep at most this many queued candidates (beam search)")
	rootCmd.PersistentFlags().Bool("no-transposition", false, "Disable the transposition table")
	rootCmd.PersistentFlags().String("goal-mode", "", "Goal comparison: equal, at_least, at_most or exact (default at_least)")
}

// runOptions collects the persistent flags. A positional argument overrides
// --catalogue unless the flag was set explicitly.
func runOptions(cmd *cobra.Command, args []string) cli.RunOptions {
	path, _ := cmd.Flags().GetString("catalogue")
	if !cmd.Flags().Changed("catalogue") && len(args) > 0 {
		path = args[0]
	}
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	opts := cli.RunOptions{Path: path, ConfigPath: configPath, Debug: debug}
	if cmd.Flags().Changed("cutoff") {
		cutoff, _ := cmd.Flags().GetInt("cutoff")
		opts.Cutoff = &cutoff
	}
	opts.MaxFrontier, _ = cmd.Flags().GetInt("max-frontier")
	opts.NoTransposition, _ = cmd.Flags().GetBool("no-transposition")
	opts.GoalMode, _ = cmd.Flags().GetString("goal-mode")
	if f := cmd.Flags().Lookup("redis"); f != nil {
		opts.RedisAddr = f.Value.String()
	}
	return opts
}

// addProblemFlags registers --start and --goal.
func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("start", "s", "", `Start state, e.g. "Money=10,Rested" or a JSON object`)
	cmd.Flags().StringP("goal", "g", "", "Goal state, same syntax as --start")
}

func planOptions(cmd *cobra.Command, args []string) cli.PlanOptions {
	start, _ := cmd.Flags().GetString("start")
	goal, _ := cmd.Flags().GetString("goal")
	opts := cli.PlanOptions{RunOptions: runOptions(cmd, args), Start: start, Goal: goal}
	if f := cmd.Flags().Lookup("json"); f != nil {
		opts.JSON, _ = cmd.Flags().GetBool("json")
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil {
		opts.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if f := cmd.Flags().Lookup("mermaid"); f != nil {
		opts.Mermaid, _ = cmd.Flags().GetBool("mermaid")
	}
	return opts
}
