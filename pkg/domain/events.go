package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep   EventType = "step"
	EventSolved EventType = "solved"
	EventFailed EventType = "failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// StepEvent is emitted after every non-terminal search step.
type StepEvent struct {
	EventBase
	Iteration int     `json:"iteration"`
	Position  string  `json:"position"`
	Cost      float64 `json:"cost"`
	Frontier  int     `json:"frontier"`
}

// SolvedEvent is emitted once a plan has been assembled.
type SolvedEvent struct {
	EventBase
	Plan Plan `json:"plan"`
}

// FailedEvent is emitted when a run ends without a plan.
type FailedEvent struct {
	EventBase
	Iteration int   `json:"iteration"`
	Err       error `json:"-"`
}

// LifecycleHooks defines callbacks for planner observability.
type LifecycleHooks struct {
	OnStep   func(context.Context, *StepEvent)
	OnSolved func(context.Context, *SolvedEvent)
	OnFailed func(context.Context, *FailedEvent)
}

// NewEventBase stamps an event of the given type.
func NewEventBase(t EventType, runID string) EventBase {
	return EventBase{Timestamp: time.Now(), Type: t, RunID: runID}
}
