package domain

import (
	"errors"
	"fmt"
)

// ErrNoPath is matched by every search failure, budget or structural.
var ErrNoPath = errors.New("no path found")

// ErrBudgetExhausted is returned when the iteration cutoff is reached before the goal.
var ErrBudgetExhausted = errors.New("iteration budget exhausted")

// ErrFrontierExhausted is returned when the frontier empties without reaching the goal.
var ErrFrontierExhausted = errors.New("frontier exhausted")

// ErrUnknownAction is returned when a collaborator is asked about an action it does not know.
var ErrUnknownAction = errors.New("unknown action")

// ErrMissingAdjacency is returned when a planner is built without an adjacency function.
var ErrMissingAdjacency = errors.New("adjacency collaborator is required")

// ErrPlanNotFound is returned by result stores on a cache miss.
var ErrPlanNotFound = errors.New("plan not found")

// BudgetExhaustedError carries the cutoff that was hit.
type BudgetExhaustedError struct {
	Cutoff     int
	Iterations int
}

func (e *BudgetExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d iterations (cutoff %d)", ErrBudgetExhausted, e.Iterations, e.Cutoff)
}

func (e *BudgetExhaustedError) Is(target error) bool {
	return target == ErrBudgetExhausted || target == ErrNoPath
}

// FrontierExhaustedError signals a disconnected or fully precondition-blocked problem.
type FrontierExhaustedError struct {
	Iterations int
	Expanded   int
}

func (e *FrontierExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d iterations (%d actions reached)", ErrFrontierExhausted, e.Iterations, e.Expanded)
}

func (e *FrontierExhaustedError) Is(target error) bool {
	return target == ErrFrontierExhausted || target == ErrNoPath
}

// MalformedEntryError reports a catalogue entry that cannot be used.
// The planner propagates it unchanged.
type MalformedEntryError struct {
	Action string
	Field  string
	Reason string
	Err    error
}

func (e *MalformedEntryError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed catalogue entry %q: %s: %s", e.Action, e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed catalogue entry %q: %s", e.Action, e.Reason)
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}
