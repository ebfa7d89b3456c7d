package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/goap/internal/config"
	"github.com/aretw0/goap/internal/presentation/graph"
	"github.com/aretw0/goap/internal/presentation/tui"
	"github.com/aretw0/goap/internal/validator"
	"github.com/aretw0/goap/pkg/domain"
)

// RunOptions contains the configuration shared by every command.
type RunOptions struct {
	// Path is a catalogue directory (one action per document) or file.
	Path       string
	ConfigPath string
	Debug      bool
	JSON       bool
	// Timeout bounds a single search. Zero means no deadline.
	Timeout time.Duration

	// Overrides applied on top of the configuration file.
	Cutoff          *int
	MaxFrontier     int
	NoTransposition bool
	GoalMode        string
	RedisAddr       string
}

// apply layers the command line overrides onto cfg.
func (o RunOptions) apply(cfg *config.Config) {
	if o.Cutoff != nil {
		cfg.Cutoff = o.Cutoff
	}
	if o.MaxFrontier > 0 {
		cfg.MaxFrontier = o.MaxFrontier
	}
	if o.NoTransposition {
		off := false
		cfg.Transposition = &off
	}
	if o.GoalMode != "" {
		cfg.Goal = o.GoalMode
	}
	if o.RedisAddr != "" {
		cfg.Cache.Redis.Addr = o.RedisAddr
	}
}

// PlanOptions selects the problem for the plan command.
type PlanOptions struct {
	RunOptions
	Start string
	Goal  string
	// Mermaid prints the dependency graph with the plan highlighted instead of a table.
	Mermaid bool
}

// Plan solves one problem and writes the result to w: JSON in JSON mode,
// rendered markdown on a terminal, plain markdown otherwise.
func Plan(ctx context.Context, opts PlanOptions, w io.Writer, tty bool) error {
	app, err := Build(opts.RunOptions)
	if err != nil {
		return err
	}
	defer app.Close()

	start, err := ParseState(StartLabel, opts.Start)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	goal, err := ParseState(GoalLabel, opts.Goal)
	if err != nil {
		return fmt.Errorf("invalid --goal: %w", err)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	planner := app.Planner()
	plan, err := planner.MaybeFindPlan(ctx, start, goal)
	if err != nil {
		return err
	}

	if opts.Mermaid {
		overlay := &graph.PlanOverlay{Actions: plan.Path.Actions()}
		_, err = io.WriteString(w, graph.GenerateMermaid(planner.Catalogue(), overlay))
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Found   bool        `json:"found"`
			Actions []string    `json:"actions"`
			Plan    domain.Plan `json:"plan"`
		}{plan.Found(), plan.Path.Actions(), plan})
	}

	var trace []domain.Step
	if plan.Found() {
		if trace, err = planner.Trace(plan); err != nil {
			return err
		}
	}
	md := tui.PlanMarkdown(plan, planner.Catalogue(), trace)
	if tty {
		if out, err := tui.NewRenderer()(md); err == nil {
			md = out
		}
	}
	_, err = io.WriteString(w, md)
	return err
}

// Validate checks the catalogue costs and that every action can fire from start.
// With a goal, it also checks that each goal condition can be raised far enough.
func Validate(opts PlanOptions) error {
	app, err := Build(opts.RunOptions)
	if err != nil {
		return err
	}
	defer app.Close()

	start, err := ParseState(StartLabel, opts.Start)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}

	c := app.Planner().Catalogue()
	if err := validator.Validate(c, start); err != nil {
		return err
	}
	if opts.Goal == "" {
		return nil
	}
	goal, err := ParseState(GoalLabel, opts.Goal)
	if err != nil {
		return fmt.Errorf("invalid --goal: %w", err)
	}
	return validator.CheckGoal(c, start, goal)
}

// Graph writes the Mermaid dependency graph of the catalogue. When a goal is
// given, the plan from start is highlighted.
func Graph(ctx context.Context, opts PlanOptions, w io.Writer) error {
	app, err := Build(opts.RunOptions)
	if err != nil {
		return err
	}
	defer app.Close()

	var overlay *graph.PlanOverlay
	if opts.Goal != "" {
		start, err := ParseState(StartLabel, opts.Start)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		goal, err := ParseState(GoalLabel, opts.Goal)
		if err != nil {
			return fmt.Errorf("invalid --goal: %w", err)
		}
		plan, err := app.Planner().MaybeFindPlan(ctx, start, goal)
		if err != nil {
			return err
		}
		overlay = &graph.PlanOverlay{Actions: plan.Path.Actions()}
	}

	_, err = io.WriteString(w, graph.GenerateMermaid(app.Planner().Catalogue(), overlay))
	return err
}
