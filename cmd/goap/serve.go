package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aretw0/goap"
	"github.com/aretw0/goap/internal/cli"
	"github.com/aretw0/goap/internal/presentation/tui"
	httpAdapter "github.com/aretw0/goap/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var serveCmd = &cobra.Command{
	Use:   "serve [catalogue]",
	Short: "Start the HTTP planning server",
	Long: `Serves the planner as a JSON API over HTTP (POST /plan, GET /actions), with
Server-Sent Events on /events and Prometheus metrics on /metrics.
With --watch, catalogue changes are picked up without a restart.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		watch, _ := cmd.Flags().GetBool("watch")
		opts := runOptions(cmd, args)
		out := cmd.ErrOrStderr()

		if term.IsTerminal(int(os.Stderr.Fd())) {
			tui.PrintBanner(out, strings.TrimSpace(goap.Version))
		}

		// Streams exist before the planner so that its event hooks are wired in.
		streams := httpAdapter.NewStreamManager()
		app, err := cli.Build(opts, streams.Hooks())
		if err != nil {
			return fmt.Errorf("error initializing goap: %w", err)
		}
		defer app.Close()

		srv := httpAdapter.NewServer(app.Planner(),
			httpAdapter.WithStreams(streams),
			httpAdapter.WithLogger(app.Logger),
			httpAdapter.WithMetrics(promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{})),
		)
		httpSrv := &http.Server{
			Addr:              ":" + port,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		g, ctx := errgroup.WithContext(sigCtx)

		actions := len(app.Planner().Catalogue())
		g.Go(func() error {
			fmt.Fprintf(out, "Starting goap server on %s\n", httpSrv.Addr)
			fmt.Fprintf(out, "Serving catalogue: %s (%d actions)\n", opts.Path, actions)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			<-ctx.Done()
			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				_ = httpSrv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			fmt.Fprintln(out, "goap server stopped gracefully")
			return nil
		})

		if watch {
			g.Go(func() error {
				err := cli.WatchReload(ctx, app, out, func(p *goap.Planner) {
					srv.SetPlanner(p)
				})
				if err != nil {
					app.Logger.Warn("hot reload disabled", "err", err)
				}
				return nil
			})
		}

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the catalogue when it changes")
	serveCmd.Flags().String("redis", "", "Share cached plans through the Redis server at this address")
}
