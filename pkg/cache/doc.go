// Package cache memoizes whole planner invocations keyed by the content of
// their (start, goal) pair.
package cache
