package runtime

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/aretw0/goap/pkg/domain"
	"github.com/google/uuid"
)

const (
	// StartName and GoalName label anonymous start and goal states.
	StartName = "START"
	GoalName  = "END"
)

// Start builds the initial context of a run. Anonymous states are named
// START and END so that paths stay readable.
func (e *Engine) Start(start, goal domain.State) *domain.Search {
	if start.Name() == "" {
		start = start.Rename(StartName)
	}
	if goal.Name() == "" {
		goal = goal.Rename(GoalName)
	}
	return domain.NewSearch(uuid.NewString(), start, goal, e.maxFrontier, e.transposition)
}

// Run drives the search loop until the goal is reached or the run fails.
// Failures match domain.ErrNoPath (budget or frontier exhaustion); collaborator
// and backtrack errors are returned as they are.
func (e *Engine) Run(ctx context.Context, start, goal domain.State) (domain.Plan, error) {
	var last *domain.Search
	for s, err := range e.Steps(ctx, start, goal) {
		if err != nil {
			return domain.Plan{}, err
		}
		last = s
	}
	if last == nil || last.Result == nil {
		// Unreachable: Steps always ends with a result or an error.
		return domain.Plan{}, errors.New("search ended without a result")
	}
	return *last.Result, nil
}

// MaybeRun is Run with sentinel failure reporting: when no path exists it
// returns domain.NoPlan() and a nil error. Other errors are still returned.
func (e *Engine) MaybeRun(ctx context.Context, start, goal domain.State) (domain.Plan, error) {
	plan, err := e.Run(ctx, start, goal)
	if errors.Is(err, domain.ErrNoPath) {
		return domain.NoPlan(), nil
	}
	return plan, err
}

// Steps exposes the search loop as a lazy sequence of contexts. One context is
// yielded after every continue step; the last element is either the terminal
// context (Result set) or an error. Ceasing to range abandons the run, no
// teardown is needed. The sequence cannot be restarted: ranging over it a
// second time yields nothing.
func (e *Engine) Steps(ctx context.Context, start, goal domain.State) iter.Seq2[*domain.Search, error] {
	consumed := false
	return func(yield func(*domain.Search, error) bool) {
		if consumed {
			return
		}
		consumed = true

		s := e.Start(start, goal)
		e.logger.Debug("search started", "run", s.RunID, "start", s.Position.String(), "goal", s.Goal.String())
		for {
			next, plan, err := e.Step(ctx, s)
			if err != nil {
				e.fail(ctx, s, err)
				yield(nil, err)
				return
			}
			if plan != nil {
				if err := e.finish(ctx, s, *plan); err != nil {
					yield(nil, err)
					return
				}
				s.Result = plan
				yield(s, nil)
				return
			}

			if e.cutoff > 0 && next.Iteration >= e.cutoff {
				err := &domain.BudgetExhaustedError{Cutoff: e.cutoff, Iterations: next.Iteration}
				e.fail(ctx, next, err)
				yield(nil, err)
				return
			}

			e.emitStep(ctx, next)
			if !yield(next, nil) {
				return
			}
			s = next
		}
	}
}

// finish runs the backtrack callback over the winning path and reports success.
func (e *Engine) finish(ctx context.Context, s *domain.Search, plan domain.Plan) error {
	if e.backtrack != nil {
		for _, n := range plan.Path {
			if err := e.backtrack(n); err != nil {
				e.fail(ctx, s, err)
				return fmt.Errorf("backtrack at %s: %w", n, err)
			}
		}
	}

	e.logger.Debug("search solved", "run", s.RunID, "cost", plan.Cost, "iterations", plan.Iterations, "path", plan.Path.String())
	if e.hooks.OnSolved != nil {
		e.hooks.OnSolved(ctx, &domain.SolvedEvent{
			EventBase: domain.NewEventBase(domain.EventSolved, s.RunID),
			Plan:      plan,
		})
	}
	return nil
}

func (e *Engine) fail(ctx context.Context, s *domain.Search, err error) {
	e.logger.Debug("search failed", "run", s.RunID, "iteration", s.Iteration, "error", err)
	if e.hooks.OnFailed != nil {
		e.hooks.OnFailed(ctx, &domain.FailedEvent{
			EventBase: domain.NewEventBase(domain.EventFailed, s.RunID),
			Iteration: s.Iteration,
			Err:       err,
		})
	}
}

func (e *Engine) emitStep(ctx context.Context, s *domain.Search) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.NewEventBase(domain.EventStep, s.RunID),
		Iteration: s.Iteration,
		Position:  s.Position.String(),
		Cost:      s.Cost,
		Frontier:  s.Frontier.Len(),
	})
}
