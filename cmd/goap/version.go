package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/goap"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goap",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "goap version %s\n", strings.TrimSpace(goap.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
