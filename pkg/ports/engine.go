package ports

import (
	"context"

	"github.com/aretw0/goap/pkg/domain"
)

// Planner is the interface used by adapters (e.g., HTTP, MCP) that serve plans per request.
type Planner interface {
	// FindPlan searches for a plan and fails with an error matching domain.ErrNoPath when none is found.
	FindPlan(ctx context.Context, start, goal domain.State) (domain.Plan, error)

	// Catalogue returns the actions the planner searches over, when it knows them.
	Catalogue() domain.Catalogue
}
