package ports

import (
	"context"

	"github.com/aretw0/goap/pkg/domain"
)

// ResultStore defines a second-tier store for memoized plans.
// It lets several planner processes share solved (start, goal) pairs.
type ResultStore interface {
	// Save persists the plan under key.
	Save(ctx context.Context, key string, plan domain.Plan) error

	// Load retrieves the plan stored under key.
	// Returns domain.ErrPlanNotFound if nothing is stored.
	Load(ctx context.Context, key string) (domain.Plan, error)

	// Delete removes the plan stored under key.
	Delete(ctx context.Context, key string) error
}
