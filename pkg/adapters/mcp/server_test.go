package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/goap"
	"github.com/aretw0/goap/internal/testutils"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts ...goap.Option) *Server {
	t.Helper()
	planner, err := goap.FromCatalogue(testutils.Household(), opts...)
	require.NoError(t, err)
	return NewServer(planner, nil)
}

func TestHandleFindPlan(t *testing.T) {
	s := newServer(t)

	resp, err := s.handleFindPlan(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"start": `{"HasDirtyDishes": 1}`,
		"goal":  `{"Fed": 1}`,
	})
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, testutils.HouseholdPlan(), resp.Actions)
	assert.Equal(t, 5.0, resp.Cost)
}

func TestHandleFindPlan_NoPath(t *testing.T) {
	s := newServer(t, goap.WithCutoff(4))

	resp, err := s.handleFindPlan(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"goal": `{"Fed": 1}`,
	})
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Empty(t, resp.Actions)
	assert.Contains(t, resp.Reason, "budget")
}

func TestHandleFindPlan_InvalidState(t *testing.T) {
	s := newServer(t)

	_, err := s.handleFindPlan(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"goal": `{"Fed": "yes please"}`,
	})
	assert.ErrorContains(t, err, "invalid goal")
}
