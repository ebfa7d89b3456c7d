package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/goap/internal/runtime"
	"github.com/aretw0/goap/internal/testutils"
	"github.com/aretw0/goap/pkg/adapters/memory"
	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollector(t *testing.T) (*observability.Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := observability.NewCollector(reg)
	require.NoError(t, err)
	return c, reg
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			require.Len(t, f.GetMetric(), 1)
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func TestCollector_Hooks(t *testing.T) {
	collector, reg := newCollector(t)

	graph := memory.NewGraph(testutils.Household(), memory.WithGoalCheck(domain.GoalAtLeast))
	engine, err := runtime.NewEngine(graph.Collaborators(), runtime.WithLifecycleHooks(collector.Hooks()))
	require.NoError(t, err)

	plan, err := engine.Run(context.Background(), testutils.HouseholdStart(), testutils.HouseholdGoal())
	require.NoError(t, err)

	failing, err := runtime.NewEngine(graph.Collaborators(),
		runtime.WithLifecycleHooks(collector.Hooks()),
		runtime.WithCutoff(2),
	)
	require.NoError(t, err)
	_, err = failing.Run(context.Background(), testutils.HouseholdStart(), testutils.HouseholdGoal())
	require.ErrorIs(t, err, domain.ErrBudgetExhausted)

	// One step per continue iteration; the failing run emits one before hitting its cutoff.
	assert.Equal(t, float64(plan.Iterations+1), counterValue(t, reg, "goap_search_steps_total"))

	count, err := testutil.GatherAndCount(reg, "goap_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "solved and budget_exhausted series")

	count, err = testutil.GatherAndCount(reg, "goap_plan_cost")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCollector_CacheLookups(t *testing.T) {
	collector, reg := newCollector(t)

	collector.ObserveCacheLookup(true)
	collector.ObserveCacheLookup(false)
	collector.ObserveCacheLookup(false)

	count, err := testutil.GatherAndCount(reg, "goap_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewCollector(reg)
	require.NoError(t, err)

	_, err = observability.NewCollector(reg)
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var solved int
	counting := domain.LifecycleHooks{
		OnSolved: func(context.Context, *domain.SolvedEvent) { solved++ },
	}

	engine, err := runtime.NewEngine(
		memory.NewGraph(testutils.Debug()).Collaborators(),
		runtime.WithLifecycleHooks(observability.Chain(observability.LoggingHooks(logger), counting)),
	)
	require.NoError(t, err)

	_, err = engine.Run(context.Background(), domain.NewState("", nil), domain.NewState("", map[string]float64{"Debug": 1}))
	require.NoError(t, err)

	assert.Equal(t, 1, solved)
	assert.Contains(t, buf.String(), `"msg":"plan_found"`)
	assert.Contains(t, buf.String(), "DebugGetSimple")
}
