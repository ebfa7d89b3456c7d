package memory

import (
	"context"
	"sync"

	"github.com/aretw0/goap/pkg/domain"
)

// ResultStore implements ports.ResultStore in memory.
// Safe for concurrent use.
type ResultStore struct {
	data map[string]domain.Plan
	mu   sync.RWMutex
}

// NewResultStore creates a new in-memory result store.
func NewResultStore() *ResultStore {
	return &ResultStore{
		data: make(map[string]domain.Plan),
	}
}

// Save persists the plan in memory.
func (s *ResultStore) Save(ctx context.Context, key string, plan domain.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Copy to ensure isolation, similar to serialization
	s.data[key] = plan.Clone()
	return nil
}

// Load retrieves the plan from memory.
func (s *ResultStore) Load(ctx context.Context, key string) (domain.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.data[key]
	if !ok {
		return domain.Plan{}, domain.ErrPlanNotFound
	}
	// Copy on read so caller can't mutate store state through the path slice
	return plan.Clone(), nil
}

// Delete removes the plan.
func (s *ResultStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Len returns the number of stored plans.
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
