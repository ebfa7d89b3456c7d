package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/aretw0/goap/internal/cli"
	"github.com/aretw0/goap/internal/logging"
	"github.com/aretw0/goap/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [catalogue]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the planner as an MCP Server, exposing the find_plan and list_actions
tools and the catalogue as a resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		app, err := cli.Build(runOptions(cmd, args))
		if err != nil {
			return fmt.Errorf("error initializing goap: %w", err)
		}
		defer app.Close()

		// MCP hosts surface stderr, so the server always logs there.
		logger := logging.New(os.Stderr, slog.LevelInfo)
		srv := mcp.NewServer(app.Planner(), logger)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting goap MCP Server (Stdio)...")
			return srv.ServeStdio()
		case "sse":
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()

			logger.Info("Starting goap MCP Server (SSE)", "port", port)
			if err := srv.ServeSSE(sigCtx, port); err != nil {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
