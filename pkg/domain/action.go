package domain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Action is a catalogue entry. The planner never mutates it.
type Action struct {
	Key           string
	Cost          float64
	Preconditions State
	Effects       State
}

// Satisfied reports whether every precondition minimum is met by the blackboard.
// Missing blackboard keys read as 0.
func (a Action) Satisfied(blackboard State) bool {
	for _, k := range a.Preconditions.Keys() {
		want, _ := a.Preconditions.Lookup(k)
		if blackboard.Get(k, 0) < want {
			return false
		}
	}
	return true
}

// Catalogue maps action keys to their definitions.
type Catalogue map[string]Action

// Keys returns the action keys in lexicographic order.
func (c Catalogue) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the action registered under key.
func (c Catalogue) Lookup(key string) (Action, error) {
	a, ok := c[key]
	if !ok {
		return Action{}, &MalformedEntryError{Action: key, Reason: ErrUnknownAction.Error(), Err: ErrUnknownAction}
	}
	return a, nil
}

// Validate checks every entry for a usable cost.
func (c Catalogue) Validate() error {
	var errs []error
	for _, key := range c.Keys() {
		a := c[key]
		switch {
		case math.IsNaN(a.Cost):
			errs = append(errs, &MalformedEntryError{Action: key, Field: "cost", Reason: "cost is NaN"})
		case a.Cost < 0:
			errs = append(errs, &MalformedEntryError{Action: key, Field: "cost", Reason: fmt.Sprintf("negative cost %g", a.Cost)})
		}
	}
	return errors.Join(errs...)
}

// Hash fingerprints the catalogue content: keys, costs, preconditions and effects.
func (c Catalogue) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, key := range c.Keys() {
		a := c[key]
		_, _ = d.WriteString(key)
		_, _ = d.Write([]byte{0})
		for _, v := range [3]uint64{valueBits(a.Cost), a.Preconditions.Hash(), a.Effects.Hash()} {
			binary.LittleEndian.PutUint64(buf[:], v)
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}
