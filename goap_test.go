package goap_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/goap"
	"github.com/aretw0/goap/internal/testutils"
	"github.com/aretw0/goap/pkg/adapters/memory"
	"github.com/aretw0/goap/pkg/cache"
	"github.com/aretw0/goap/pkg/catalogue"
	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Directory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"Idle.md": "---\neffects:\n  Rested: 1\n---\nRest a while.",
		"Work.md": "---\ncost: 2\npreconditions:\n  Rested: 1\neffects:\n  Money: 10\n---\nEarn money.",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	planner, err := goap.Open(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), planner.Name)
	assert.Equal(t, []string{"Idle", "Work"}, planner.Catalogue().Keys())

	plan, err := planner.FindPlan(context.Background(),
		domain.NewState("", nil),
		domain.NewState("", map[string]float64{"Money": 10}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Idle", "Work"}, plan.Path.Actions())
	assert.Equal(t, 3.0, plan.Cost)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "household.json")
	require.NoError(t, catalogue.Save(path, testutils.Household()))

	planner, err := goap.Open(path)
	require.NoError(t, err)

	plan, err := planner.FindPlan(context.Background(), testutils.HouseholdStart(), testutils.HouseholdGoal())
	require.NoError(t, err)
	assert.Equal(t, testutils.HouseholdPlan(), plan.Path.Actions())

	_, err = planner.Watch(context.Background())
	assert.Error(t, err, "file loaders do not watch")
}

func TestOpen_Errors(t *testing.T) {
	_, err := goap.Open("")
	assert.Error(t, err)

	_, err = goap.Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOpen_WithLoader(t *testing.T) {
	loader := memory.NewLoader(testutils.Debug())

	planner, err := goap.Open("debug", goap.WithLoader(loader), goap.WithGoalCheck(domain.GoalEqual))
	require.NoError(t, err)
	assert.Equal(t, "debug", planner.Name)
	assert.Same(t, loader, planner.Loader())

	plan, err := planner.FindPlan(context.Background(),
		domain.NewState("", nil),
		domain.NewState("", map[string]float64{"Debug": 1}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"DebugGetSimple"}, plan.Path.Actions())
}

func TestFromCatalogue_RejectsMalformed(t *testing.T) {
	c := domain.Catalogue{"Bad": {Key: "Bad", Cost: -1}}

	_, err := goap.FromCatalogue(c)
	var malformed *domain.MalformedEntryError
	require.True(t, errors.As(err, &malformed), "got %v", err)
	assert.Equal(t, "Bad", malformed.Action)
}

func TestPlanner_Options(t *testing.T) {
	ctx := context.Background()

	t.Run("Cutoff", func(t *testing.T) {
		planner, err := goap.FromCatalogue(testutils.Household(), goap.WithCutoff(3))
		require.NoError(t, err)

		_, err = planner.FindPlan(ctx, testutils.HouseholdStart(), testutils.HouseholdGoal())
		assert.ErrorIs(t, err, domain.ErrBudgetExhausted)

		plan, err := planner.MaybeFindPlan(ctx, testutils.HouseholdStart(), testutils.HouseholdGoal())
		require.NoError(t, err)
		assert.False(t, plan.Found())
	})

	t.Run("Backtrack", func(t *testing.T) {
		var visited []string
		planner, err := goap.FromCatalogue(testutils.Household(), goap.WithBacktrack(func(n domain.Node) error {
			visited = append(visited, n.String())
			return nil
		}))
		require.NoError(t, err)

		_, err = planner.FindPlan(ctx, testutils.HouseholdStart(), testutils.HouseholdGoal())
		require.NoError(t, err)
		assert.Equal(t, append([]string{"START"}, testutils.HouseholdPlan()...), visited)
	})

	t.Run("Path Recorder", func(t *testing.T) {
		var rec domain.PathRecorder
		planner, err := goap.FromCatalogue(testutils.Household(), goap.WithBacktrack(rec.Record))
		require.NoError(t, err)

		plan, err := planner.FindPlan(ctx, testutils.HouseholdStart(), testutils.HouseholdGoal())
		require.NoError(t, err)
		assert.Equal(t, plan.Path, rec.Path())

		rec.Reset()
		assert.Empty(t, rec.Path())
	})

	t.Run("Trace", func(t *testing.T) {
		planner, err := goap.FromCatalogue(testutils.Household())
		require.NoError(t, err)

		plan, err := planner.FindPlan(ctx, testutils.HouseholdStart(), testutils.HouseholdGoal())
		require.NoError(t, err)

		steps, err := planner.Trace(plan)
		require.NoError(t, err)
		require.Len(t, steps, len(plan.Path))
		assert.Equal(t, map[string]float64{"Money": 10}, steps[2].Delta.Changed, "Work")
		assert.Equal(t, 1.0, steps[len(steps)-1].Blackboard.Get("Fed", 0))
	})

	t.Run("Cost Priority", func(t *testing.T) {
		planner, err := goap.FromCatalogue(testutils.Household(), goap.WithPriority(domain.CostPriority))
		require.NoError(t, err)

		plan, err := planner.FindPlan(ctx, testutils.HouseholdStart(), testutils.HouseholdGoal())
		require.NoError(t, err)
		assert.Equal(t, 5.0, plan.Cost)
	})
}

func TestPlanner_Cache(t *testing.T) {
	var solved int
	hooks := domain.LifecycleHooks{
		OnSolved: func(context.Context, *domain.SolvedEvent) { solved++ },
	}

	planner, err := goap.FromCatalogue(testutils.Household(),
		goap.WithLifecycleHooks(hooks),
		goap.WithCache(cache.WithCapacity(8)),
	)
	require.NoError(t, err)
	require.NotNil(t, planner.Cache())

	ctx := context.Background()
	first, err := planner.FindPlan(ctx, testutils.HouseholdStart(), testutils.HouseholdGoal())
	require.NoError(t, err)
	second, err := planner.FindPlan(ctx, testutils.HouseholdStart(), testutils.HouseholdGoal())
	require.NoError(t, err)

	assert.Equal(t, 1, solved, "the second query is served from the cache")
	assert.Equal(t, first.Path.String(), second.Path.String())
	assert.Equal(t, int64(1), planner.Cache().Stats().Hits)

	// Steps always searches.
	for range planner.Steps(ctx, testutils.HouseholdStart(), testutils.HouseholdGoal()) {
	}
	assert.Equal(t, 2, solved)
}

func TestPlanner_Solver(t *testing.T) {
	planner, err := goap.FromCatalogue(testutils.Household())
	require.NoError(t, err)
	assert.Nil(t, planner.Cache())

	solve := planner.Solver()
	plan, err := solve(context.Background(), testutils.HouseholdStart(), testutils.HouseholdGoal())
	require.NoError(t, err)
	assert.Equal(t, 5.0, plan.Cost)
}

func TestPlanner_ContextCancellation(t *testing.T) {
	planner, err := goap.FromCatalogue(testutils.Household())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = planner.FindPlan(ctx, testutils.HouseholdStart(), testutils.HouseholdGoal())
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrNoPath)
}

func TestNew_RequiresAdjacency(t *testing.T) {
	_, err := goap.New(ports.Collaborators{})
	assert.ErrorIs(t, err, domain.ErrMissingAdjacency)
}
