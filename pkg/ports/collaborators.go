package ports

import (
	"github.com/aretw0/goap/pkg/domain"
)

// ActionGraph is the action-graph contract consumed by the planner.
// Implementations describe the problem; they never drive the search.
type ActionGraph interface {
	// Adjacency lists the action keys reachable from a position. Order is not significant.
	Adjacency(position domain.Node) ([]string, error)
	// PreconditionsMet reports whether every precondition minimum of action is met.
	PreconditionsMet(action string, blackboard domain.State) (bool, error)
	// EffectsOf returns the delta merged into the blackboard when action is taken.
	EffectsOf(action string) (domain.State, error)
	// EdgeCost returns the non-negative cost of moving from current to candidate.
	EdgeCost(current domain.Node, candidate string) (float64, error)
	// GoalDistance is a non-negative heuristic. It need not be admissible.
	GoalDistance(candidate string, goal domain.State) (float64, error)
	// GoalSatisfied decides whether a blackboard meets the goal.
	GoalSatisfied(blackboard, goal domain.State) bool
}

// Collaborators bundles the six action-graph functions as plain fields.
// It is passed by value into the planner; nil fields fall back to defaults.
type Collaborators struct {
	Adjacency        func(position domain.Node) ([]string, error)
	PreconditionsMet func(action string, blackboard domain.State) (bool, error)
	EffectsOf        func(action string) (domain.State, error)
	EdgeCost         func(current domain.Node, candidate string) (float64, error)
	GoalDistance     func(candidate string, goal domain.State) (float64, error)
	GoalSatisfied    func(blackboard, goal domain.State) bool
}

// FromGraph binds the methods of an ActionGraph.
func FromGraph(g ActionGraph) Collaborators {
	return Collaborators{
		Adjacency:        g.Adjacency,
		PreconditionsMet: g.PreconditionsMet,
		EffectsOf:        g.EffectsOf,
		EdgeCost:         g.EdgeCost,
		GoalDistance:     g.GoalDistance,
		GoalSatisfied:    g.GoalSatisfied,
	}
}

// WithDefaults returns a copy with every nil optional field filled in:
// preconditions always met, no effects, unit edge cost, zero goal distance
// and domain.GoalEqual.
func (c Collaborators) WithDefaults() (Collaborators, error) {
	if c.Adjacency == nil {
		return c, domain.ErrMissingAdjacency
	}
	if c.PreconditionsMet == nil {
		c.PreconditionsMet = func(string, domain.State) (bool, error) { return true, nil }
	}
	if c.EffectsOf == nil {
		c.EffectsOf = func(string) (domain.State, error) { return domain.NewState("", nil), nil }
	}
	if c.EdgeCost == nil {
		c.EdgeCost = func(domain.Node, string) (float64, error) { return 1, nil }
	}
	if c.GoalDistance == nil {
		c.GoalDistance = func(string, domain.State) (float64, error) { return 0, nil }
	}
	if c.GoalSatisfied == nil {
		c.GoalSatisfied = domain.GoalEqual
	}
	return c, nil
}
