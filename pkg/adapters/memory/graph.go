package memory

import (
	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/ports"
)

// Graph implements ports.ActionGraph over an in-memory catalogue.
// Every action is adjacent to every position; preconditions are componentwise
// minimums and the edge cost is the cost of the target action.
type Graph struct {
	catalogue domain.Catalogue
	keys      []string
	goal      domain.GoalCheck
	heuristic func(action string, goal domain.State) float64
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithGoalCheck replaces the goal comparator (default domain.GoalAtLeast).
func WithGoalCheck(check domain.GoalCheck) GraphOption {
	return func(g *Graph) {
		if check != nil {
			g.goal = check
		}
	}
}

// WithHeuristic sets the goal-distance estimate (default 0).
func WithHeuristic(h func(action string, goal domain.State) float64) GraphOption {
	return func(g *Graph) {
		g.heuristic = h
	}
}

// NewGraph creates an action graph over c. The catalogue is not copied and
// must not be modified while the graph is in use.
func NewGraph(c domain.Catalogue, opts ...GraphOption) *Graph {
	g := &Graph{
		catalogue: c,
		keys:      c.Keys(),
		goal:      domain.GoalAtLeast,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Catalogue returns the underlying catalogue.
func (g *Graph) Catalogue() domain.Catalogue {
	return g.catalogue
}

// Collaborators binds the graph into the planner's collaborator bundle.
func (g *Graph) Collaborators() ports.Collaborators {
	return ports.FromGraph(g)
}

// Adjacency returns every action key in lexicographic order.
func (g *Graph) Adjacency(domain.Node) ([]string, error) {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out, nil
}

func (g *Graph) PreconditionsMet(action string, blackboard domain.State) (bool, error) {
	a, err := g.catalogue.Lookup(action)
	if err != nil {
		return false, err
	}
	return a.Satisfied(blackboard), nil
}

func (g *Graph) EffectsOf(action string) (domain.State, error) {
	a, err := g.catalogue.Lookup(action)
	if err != nil {
		return domain.State{}, err
	}
	return a.Effects, nil
}

func (g *Graph) EdgeCost(_ domain.Node, candidate string) (float64, error) {
	a, err := g.catalogue.Lookup(candidate)
	if err != nil {
		return 0, err
	}
	return a.Cost, nil
}

func (g *Graph) GoalDistance(candidate string, goal domain.State) (float64, error) {
	if g.heuristic == nil {
		return 0, nil
	}
	return g.heuristic(candidate, goal), nil
}

func (g *Graph) GoalSatisfied(blackboard, goal domain.State) bool {
	return g.goal(blackboard, goal)
}
