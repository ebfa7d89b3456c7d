package domain

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// PathEntry is the best known way of reaching an action.
type PathEntry struct {
	Cost       float64
	Parent     Node
	Trajectory Path
}

// Search is the explicit context of one planning run. Everything the search
// step needs lives here, so a run can be paused, inspected and resumed by
// holding on to this value. A Search is owned by exactly one caller at a time.
type Search struct {
	RunID string

	// Position is the node being expanded and Trajectory the nodes before it.
	Position   Node
	Trajectory Path
	Goal       State
	Blackboard State
	Cost       float64
	Iteration  int

	Frontier *Frontier
	Paths    map[string]PathEntry

	// Visited holds expanded (position, blackboard) pairs, see VisitKey.
	Visited map[uint64]struct{}
	// Transpositions holds the content hashes of every blackboard expanded so
	// far, seeded with the start state. It is nil when the table is disabled.
	Transpositions map[uint64]struct{}
	// Replays memoizes blackboards rebuilt from trajectory prefixes, keyed by PrefixHash.
	Replays map[uint64]State

	// Result is set on the terminal context of a successful run.
	Result *Plan
}

// NewSearch builds the initial context for a run starting at start.
func NewSearch(runID string, start, goal State, frontierCap int, transposition bool) *Search {
	s := &Search{
		RunID:      runID,
		Position:   StateNode(start),
		Trajectory: Path{},
		Goal:       goal,
		Blackboard: NewState("", nil),
		Frontier:   NewFrontier(frontierCap),
		Paths:      make(map[string]PathEntry),
		Visited:    make(map[uint64]struct{}),
		Replays:    make(map[uint64]State),
	}
	if transposition {
		s.Transpositions = map[uint64]struct{}{start.Hash(): {}}
	}
	return s
}

// Done reports whether the context is terminal.
func (s *Search) Done() bool {
	return s.Result != nil
}

// RecordPath stores an entry only when it is strictly cheaper than the known one.
func (s *Search) RecordPath(action string, entry PathEntry) bool {
	if cur, ok := s.Paths[action]; ok && entry.Cost >= cur.Cost {
		return false
	}
	s.Paths[action] = entry
	return true
}

// VisitKey identifies a state-space node: a position reached with a given blackboard.
func VisitKey(position Node, blackboard State) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], blackboard.Hash())
	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(position.ID())
	return d.Sum64()
}

// PrefixHash extends the rolling hash of a trajectory prefix by one node.
func PrefixHash(prev uint64, n Node) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], prev)
	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(n.ID())
	return d.Sum64()
}
