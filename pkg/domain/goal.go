package domain

import (
	"fmt"
	"strings"
)

// GoalCheck decides whether a blackboard satisfies a goal.
type GoalCheck func(blackboard, goal State) bool

// GoalCompare builds a per-key check: every goal key must satisfy
// cmp(blackboard value, goal value). Missing blackboard keys read as 0.
func GoalCompare(cmp func(have, want float64) bool) GoalCheck {
	return func(blackboard, goal State) bool {
		for _, k := range goal.Keys() {
			want, _ := goal.Lookup(k)
			if !cmp(blackboard.Get(k, 0), want) {
				return false
			}
		}
		return true
	}
}

var (
	// GoalEqual requires every goal key to match exactly. It is the default.
	GoalEqual = GoalCompare(func(have, want float64) bool { return have == want })
	// GoalAtLeast requires every goal key to be reached or exceeded.
	GoalAtLeast = GoalCompare(func(have, want float64) bool { return have >= want })
	// GoalAtMost requires every goal key to stay at or below the goal value.
	GoalAtMost = GoalCompare(func(have, want float64) bool { return have <= want })
)

// GoalExact requires the whole blackboard to equal the goal, extra keys included.
func GoalExact(blackboard, goal State) bool {
	return blackboard.Equal(goal)
}

// ParseGoalCheck resolves a goal mode by its configuration name.
func ParseGoalCheck(mode string) (GoalCheck, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "equal", "eq":
		return GoalEqual, nil
	case "at_least", "atleast", "gte", "min":
		return GoalAtLeast, nil
	case "at_most", "atmost", "lte", "max":
		return GoalAtMost, nil
	case "exact":
		return GoalExact, nil
	default:
		return nil, fmt.Errorf("unknown goal mode %q", mode)
	}
}
