package ports_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockStore is an in-memory implementation of ResultStore for testing purposes.
type MockStore struct {
	data map[string][]byte
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string][]byte),
	}
}

func (m *MockStore) Save(ctx context.Context, key string, plan domain.Plan) error {
	// Serialize to simulate a remote store
	raw, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *MockStore) Load(ctx context.Context, key string) (domain.Plan, error) {
	raw, ok := m.data[key]
	if !ok {
		return domain.Plan{}, domain.ErrPlanNotFound
	}
	var plan domain.Plan
	err := json.Unmarshal(raw, &plan)
	return plan, err
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestMockStore_Contract(t *testing.T) {
	ports.RunResultStoreContract(t, NewMockStore())
}

func TestCollaborators_WithDefaults(t *testing.T) {
	t.Run("Adjacency Required", func(t *testing.T) {
		_, err := ports.Collaborators{}.WithDefaults()
		assert.ErrorIs(t, err, domain.ErrMissingAdjacency)
	})

	t.Run("Defaults Filled", func(t *testing.T) {
		c, err := ports.Collaborators{
			Adjacency: func(domain.Node) ([]string, error) { return nil, nil },
		}.WithDefaults()
		require.NoError(t, err)

		ok, err := c.PreconditionsMet("any", domain.NewState("", nil))
		require.NoError(t, err)
		assert.True(t, ok)

		cost, err := c.EdgeCost(domain.ActionNode("a"), "b")
		require.NoError(t, err)
		assert.Equal(t, 1.0, cost)

		dist, err := c.GoalDistance("b", domain.NewState("", nil))
		require.NoError(t, err)
		assert.Equal(t, 0.0, dist)

		eff, err := c.EffectsOf("b")
		require.NoError(t, err)
		assert.Equal(t, 0, eff.Len())

		goal := domain.NewState("", map[string]float64{"x": 1})
		assert.True(t, c.GoalSatisfied(goal, goal))
		assert.False(t, c.GoalSatisfied(domain.NewState("", map[string]float64{"x": 2}), goal))
	})
}
