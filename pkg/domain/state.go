package domain

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Reserved JSON keys that mark an object as an encoded State.
const (
	MarkerIsState   = "_isState"
	MarkerStateName = "_stateName"
)

// State is a sparse numeric world-state: condition name -> magnitude.
// Absent keys read as the caller supplied default (usually 0).
//
// A State is immutable once built. Every operation that "changes" a State
// (Merge, Rename) returns an independent copy, so a State published into a
// frontier entry can never be affected by its siblings or descendants.
type State struct {
	name   string
	values map[string]float64
}

// NewState builds a State from key/value pairs. The input map is copied.
func NewState(name string, values map[string]float64) State {
	cp := make(map[string]float64, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return State{name: name, values: cp}
}

// Name returns the display name used in diagnostics. It is not part of the content.
func (s State) Name() string {
	return s.name
}

// Rename returns a copy of the State carrying a different display name.
func (s State) Rename(name string) State {
	return NewState(name, s.values)
}

// Get returns the value stored under key, or def when the key is absent.
func (s State) Get(key string, def float64) float64 {
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// Lookup returns the value stored under key and whether it was present.
func (s State) Lookup(key string) (float64, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the condition names in lexicographic order.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of explicitly stored conditions.
func (s State) Len() int {
	return len(s.values)
}

// Values returns a copy of the underlying mapping.
func (s State) Values() map[string]float64 {
	cp := make(map[string]float64, len(s.values))
	for k, v := range s.values {
		cp[k] = v
	}
	return cp
}

// Equal reports whether both States hold identical key/value pairs.
// Names are ignored and {"a": 0} is not equal to {}.
func (s State) Equal(other State) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	for k, v := range s.values {
		ov, ok := other.values[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Hash returns a reproducible content hash: keys are visited in sorted order
// and each (key, value) pair is fed to an xxhash64 digest. Construction order
// and the display name do not influence the result.
func (s State) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, k := range s.Keys() {
		_, _ = d.WriteString(k)
		_, _ = d.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], valueBits(s.values[k]))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// valueBits normalizes negative zero so that Equal values hash equally.
func valueBits(v float64) uint64 {
	if v == 0 {
		return 0
	}
	return math.Float64bits(v)
}

// Merge folds effects into a copy of s. For every effect key the new value is
// op(current_or_def, delta), where op is chosen by the policy.
func (s State) Merge(effects State, def float64, policy MergePolicy) State {
	out := make(map[string]float64, len(s.values)+len(effects.values))
	for k, v := range s.values {
		out[k] = v
	}
	for _, k := range effects.Keys() {
		cur, ok := out[k]
		if !ok {
			cur = def
		}
		out[k] = policy.opFor(k)(cur, effects.values[k])
	}
	return State{name: s.name, values: out}
}

func (s State) String() string {
	var b strings.Builder
	if s.name != "" {
		b.WriteString(s.name)
	}
	b.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(s.values[k], 'g', -1, 64))
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the State as a flat object tagged with the reserved
// markers, e.g. {"Money": 10, "_isState": true, "_stateName": "START"}.
func (s State) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.values)+2)
	for k, v := range s.values {
		out[k] = v
	}
	out[MarkerIsState] = true
	out[MarkerStateName] = s.name
	return json.Marshal(out)
}

// UnmarshalJSON accepts both marked and plain objects. Booleans decode as 1/0.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st, err := StateFromMap(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// StateFromMap converts a decoded document (JSON, YAML, front matter) into a
// State, honouring the reserved markers.
func StateFromMap(raw map[string]any) (State, error) {
	name := ""
	values := make(map[string]float64, len(raw))
	for k, v := range raw {
		switch k {
		case MarkerIsState:
			continue
		case MarkerStateName:
			if v != nil {
				name = fmt.Sprint(v)
			}
			continue
		}
		f, err := ToFloat(v)
		if err != nil {
			return State{}, fmt.Errorf("condition %q: %w", k, err)
		}
		values[k] = f
	}
	return State{name: name, values: values}, nil
}

// IsEncodedState reports whether a decoded mapping carries the State marker.
func IsEncodedState(raw map[string]any) bool {
	v, ok := raw[MarkerIsState].(bool)
	return ok && v
}

// ToFloat coerces the numeric shapes produced by the various decoders.
func ToFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}
