/*
Package goap is a goal-oriented action planner for numeric world states.

A plan is a sequence of actions that transforms a start state into one that
satisfies a goal. Every action has a cost, preconditions (minimum values the
running blackboard must hold) and effects (deltas folded into the blackboard).
The planner runs a best-first search over (action, blackboard) pairs and
returns the root-to-goal path together with its accumulated cost.

# Concept

The search core only talks to six collaborator functions: adjacency,
preconditions, effects, edge cost, goal distance and the goal test. A
Catalogue of actions is the usual way to provide them, but any
ports.Collaborators value works, so the planner can be embedded over
problem-specific data without copying it.

Each run is carried by an explicit *domain.Search context. Steps exposes the
run as a lazy sequence of those contexts, so callers can pause, inspect or
abandon a search between iterations.

# Usage

	planner, err := goap.Open("./actions") // one Markdown/YAML/JSON document per action
	if err != nil {
		log.Fatal(err)
	}

	start := domain.NewState("", map[string]float64{"HasDirtyDishes": 1})
	goal := domain.NewState("", map[string]float64{"Fed": 1})

	plan, err := planner.FindPlan(ctx, start, goal)
	if errors.Is(err, domain.ErrNoPath) {
		log.Println("no plan within budget")
	}
	fmt.Println(plan.Path) // START -> Idle -> Work -> DishWash -> Shop -> Eat

Failures carry their cause: *domain.BudgetExhaustedError when the iteration
cutoff is hit and *domain.FrontierExhaustedError when nothing is left to
explore. Both match domain.ErrNoPath.
*/
package goap
