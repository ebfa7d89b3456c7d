package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/goap/pkg/domain"
)

// LoggingHooks logs run outcomes, and every step at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "search_step",
				"run_id", e.RunID,
				"iteration", e.Iteration,
				"position", e.Position,
				"cost", e.Cost,
				"frontier", e.Frontier,
			)
		},
		OnSolved: func(ctx context.Context, e *domain.SolvedEvent) {
			logger.InfoContext(ctx, "plan_found",
				"run_id", e.RunID,
				"cost", e.Plan.Cost,
				"iterations", e.Plan.Iterations,
				"path", e.Plan.Path.String(),
			)
		},
		OnFailed: func(ctx context.Context, e *domain.FailedEvent) {
			logger.WarnContext(ctx, "plan_failed",
				"run_id", e.RunID,
				"iteration", e.Iteration,
				"error", e.Err,
			)
		},
	}
}

// Chain fans every event out to each set of hooks in order. Nil callbacks are skipped.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			for _, h := range hooks {
				if h.OnStep != nil {
					h.OnStep(ctx, e)
				}
			}
		},
		OnSolved: func(ctx context.Context, e *domain.SolvedEvent) {
			for _, h := range hooks {
				if h.OnSolved != nil {
					h.OnSolved(ctx, e)
				}
			}
		},
		OnFailed: func(ctx context.Context, e *domain.FailedEvent) {
			for _, h := range hooks {
				if h.OnFailed != nil {
					h.OnFailed(ctx, e)
				}
			}
		},
	}
}
