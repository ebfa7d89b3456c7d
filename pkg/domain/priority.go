package domain

import (
	"fmt"
	"strings"
)

// PriorityFunc produces the frontier ordering key of a candidate from the
// iteration that created it, the cost so far and the candidate's heuristic.
// Keys are compared lexicographically; lower pops first.
type PriorityFunc func(iteration int, costSoFar, heuristic float64) []float64

// IterationPriority orders the frontier by creation iteration only. Ties are
// broken by total cost, which keeps cheap dead ends from starving expensive
// candidates that sit next to the goal.
func IterationPriority(iteration int, _, _ float64) []float64 {
	return []float64{float64(iteration)}
}

// CostPriority orders purely by estimated total cost (best-first).
func CostPriority(_ int, costSoFar, heuristic float64) []float64 {
	return []float64{costSoFar + heuristic}
}

// DepthThenCostPriority prefers older candidates, then cheaper ones.
func DepthThenCostPriority(iteration int, costSoFar, heuristic float64) []float64 {
	return []float64{float64(iteration), costSoFar + heuristic}
}

// ParsePriority resolves a priority function by its configuration name.
func ParsePriority(name string) (PriorityFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "iteration", "bfs":
		return IterationPriority, nil
	case "cost", "best_first":
		return CostPriority, nil
	case "iteration_cost":
		return DepthThenCostPriority, nil
	default:
		return nil, fmt.Errorf("unknown priority %q", name)
	}
}

// ComparePriority compares two keys lexicographically. A key that is a strict
// prefix of the other sorts first.
func ComparePriority(a, b []float64) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
