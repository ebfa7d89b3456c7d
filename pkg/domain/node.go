package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Node is one element of a trajectory: either an action key or a state
// contribution (the declared start state). State nodes are merged into the
// blackboard when visited; action nodes contribute their effects.
type Node struct {
	Action string
	State  *State
}

// ActionNode wraps an action key.
func ActionNode(key string) Node {
	return Node{Action: key}
}

// StateNode wraps a state contribution.
func StateNode(s State) Node {
	return Node{State: &s}
}

// IsState reports whether the node contributes a whole state.
func (n Node) IsState() bool {
	return n.State != nil
}

// ID is a stable identifier used by the paths map and the visited gate.
func (n Node) ID() string {
	if n.State != nil {
		return fmt.Sprintf("state:%016x", n.State.Hash())
	}
	return n.Action
}

func (n Node) String() string {
	if n.State != nil {
		if n.State.Name() != "" {
			return n.State.Name()
		}
		return n.State.String()
	}
	return n.Action
}

// MarshalJSON writes action nodes as plain strings and state nodes as marked objects.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.State != nil {
		return json.Marshal(*n.State)
	}
	return json.Marshal(n.Action)
}

func (n *Node) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var key string
		if err := json.Unmarshal(data, &key); err != nil {
			return err
		}
		*n = ActionNode(key)
		return nil
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = StateNode(s)
	return nil
}

// Path is a root-to-leaf trajectory.
type Path []Node

// Actions returns the action keys of the path, skipping state contributions.
func (p Path) Actions() []string {
	out := make([]string, 0, len(p))
	for _, n := range p {
		if !n.IsState() {
			out = append(out, n.Action)
		}
	}
	return out
}

// Extend returns a new path with n appended. The receiver is never written to.
func (p Path) Extend(n Node) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, n)
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = n.String()
	}
	return strings.Join(parts, " -> ")
}

// Plan is the outcome of a search: the accumulated cost and the full
// root-to-goal trajectory. A failed search yields NoPlan.
type Plan struct {
	Cost       float64
	Path       Path
	Iterations int
}

// NoPlan is the sentinel failure result: infinite cost and an empty path.
func NoPlan() Plan {
	return Plan{Cost: math.Inf(1), Path: Path{}}
}

// Found reports whether the plan reaches the goal.
func (p Plan) Found() bool {
	return !math.IsInf(p.Cost, 1) && !math.IsNaN(p.Cost)
}

// Clone returns a copy whose path can be modified independently.
func (p Plan) Clone() Plan {
	out := p
	out.Path = make(Path, len(p.Path))
	copy(out.Path, p.Path)
	return out
}

type planJSON struct {
	Cost       *float64 `json:"cost"`
	Path       Path     `json:"path"`
	Iterations int      `json:"iterations,omitempty"`
}

// MarshalJSON encodes an infinite cost as null, since JSON has no infinity.
func (p Plan) MarshalJSON() ([]byte, error) {
	w := planJSON{Path: p.Path, Iterations: p.Iterations}
	if w.Path == nil {
		w.Path = Path{}
	}
	if p.Found() {
		c := p.Cost
		w.Cost = &c
	}
	return json.Marshal(w)
}

func (p *Plan) UnmarshalJSON(data []byte) error {
	var w planJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.Path = w.Path
	p.Iterations = w.Iterations
	if w.Cost == nil {
		p.Cost = math.Inf(1)
	} else {
		p.Cost = *w.Cost
	}
	return nil
}
