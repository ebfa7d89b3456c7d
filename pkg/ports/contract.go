package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/goap/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	key := "contract-test-plan-" + time.Now().Format("20060102150405")

	plan := domain.Plan{
		Cost: 3,
		Path: domain.Path{
			domain.StateNode(domain.NewState("START", map[string]float64{"Rested": 1})),
			domain.ActionNode("Work"),
			domain.ActionNode("Shop"),
		},
		Iterations: 4,
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, key, plan)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, plan.Cost, loaded.Cost)
		assert.Equal(t, plan.Iterations, loaded.Iterations)
		require.Len(t, loaded.Path, 3)
		assert.True(t, loaded.Path[0].IsState())
		assert.True(t, plan.Path[0].State.Equal(*loaded.Path[0].State))
		assert.Equal(t, "START", loaded.Path[0].State.Name())
		assert.Equal(t, []string{"Work", "Shop"}, loaded.Path.Actions())
	})

	t.Run("Loaded Plan Is Independent", func(t *testing.T) {
		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		loaded.Path[1] = domain.ActionNode("Tampered")

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "Work", again.Path[1].Action)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrPlanNotFound, "Load after Delete should return ErrPlanNotFound")
	})
}
