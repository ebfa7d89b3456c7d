package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/goap/internal/runtime"
	"github.com/aretw0/goap/internal/testutils"
	"github.com/aretw0/goap/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	t.Run("Solved", func(t *testing.T) {
		var steps []int
		var solved *domain.SolvedEvent
		runIDs := map[string]bool{}

		hooks := domain.LifecycleHooks{
			OnStep: func(ctx context.Context, e *domain.StepEvent) {
				steps = append(steps, e.Iteration)
				runIDs[e.RunID] = true
				assert.Equal(t, domain.EventStep, e.Type)
			},
			OnSolved: func(ctx context.Context, e *domain.SolvedEvent) {
				solved = e
				runIDs[e.RunID] = true
			},
			OnFailed: func(ctx context.Context, e *domain.FailedEvent) {
				t.Errorf("unexpected failure event: %v", e.Err)
			},
		}

		engine := household(t, runtime.WithLifecycleHooks(hooks))
		plan, err := engine.Run(context.Background(), testutils.HouseholdStart(), testutils.HouseholdGoal())
		require.NoError(t, err)

		require.NotNil(t, solved)
		assert.Equal(t, plan.Cost, solved.Plan.Cost)
		assert.Len(t, steps, plan.Iterations, "one step event per continue step")
		assert.Equal(t, 1, steps[0])
		assert.Len(t, runIDs, 1, "all events share the run id")
	})

	t.Run("Failed", func(t *testing.T) {
		var failed *domain.FailedEvent
		hooks := domain.LifecycleHooks{
			OnFailed: func(ctx context.Context, e *domain.FailedEvent) {
				failed = e
			},
		}

		engine := household(t, runtime.WithLifecycleHooks(hooks), runtime.WithCutoff(2))
		_, err := engine.Run(context.Background(), testutils.HouseholdStart(), testutils.HouseholdGoal())
		require.Error(t, err)

		require.NotNil(t, failed)
		assert.ErrorIs(t, failed.Err, domain.ErrBudgetExhausted)
		assert.Equal(t, 2, failed.Iteration)
		assert.NotEmpty(t, failed.RunID)
	})
}
