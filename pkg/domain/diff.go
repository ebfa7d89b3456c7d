package domain

// StateDiff represents the changes between two states.
// It is designed to be serialized to JSON as a compact per-step trace.
type StateDiff struct {
	// Changed contains added or modified keys with their new value.
	Changed map[string]float64 `json:"changed,omitempty"`

	// Removed lists keys present before and absent after.
	Removed []string `json:"removed,omitempty"`
}

// IsEmpty checks if the diff contains any change.
func (d StateDiff) IsEmpty() bool {
	return len(d.Changed) == 0 && len(d.Removed) == 0
}

// Diff calculates the difference between before and after.
func Diff(before, after State) StateDiff {
	var diff StateDiff
	for _, k := range after.Keys() {
		nv, _ := after.Lookup(k)
		if ov, ok := before.Lookup(k); ok && ov == nv {
			continue
		}
		if diff.Changed == nil {
			diff.Changed = make(map[string]float64)
		}
		diff.Changed[k] = nv
	}
	for _, k := range before.Keys() {
		if _, ok := after.Lookup(k); !ok {
			diff.Removed = append(diff.Removed, k)
		}
	}
	return diff
}

// Step is one entry of a replayed plan: the node and the blackboard after it.
type Step struct {
	Node       Node      `json:"node"`
	Blackboard State     `json:"blackboard"`
	Delta      StateDiff `json:"delta"`
}

// EffectsFunc resolves the effect delta of an action key.
type EffectsFunc func(action string) (State, error)

// Trace replays a path from an empty blackboard and reports the delta of every node.
func Trace(path Path, effects EffectsFunc, def float64, policy MergePolicy) ([]Step, error) {
	bb := NewState("", nil)
	steps := make([]Step, 0, len(path))
	for _, n := range path {
		var contribution State
		if n.IsState() {
			contribution = *n.State
		} else {
			eff, err := effects(n.Action)
			if err != nil {
				return nil, err
			}
			contribution = eff
		}
		next := bb.Merge(contribution, def, policy)
		steps = append(steps, Step{Node: n, Blackboard: next, Delta: Diff(bb, next)})
		bb = next
	}
	return steps, nil
}
