package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// MergeOp combines the current value of a condition with an effect delta.
type MergeOp func(current, delta float64) float64

// Add accumulates the delta. It is the default operator.
func Add(current, delta float64) float64 { return current + delta }

// Overwrite replaces the current value with the delta.
func Overwrite(_, delta float64) float64 { return delta }

// Subtract removes the delta from the current value.
func Subtract(current, delta float64) float64 { return current - delta }

// Max keeps the larger of both values.
func Max(current, delta float64) float64 { return math.Max(current, delta) }

// Min keeps the smaller of both values.
func Min(current, delta float64) float64 { return math.Min(current, delta) }

var mergeOps = map[string]MergeOp{
	"add":       Add,
	"overwrite": Overwrite,
	"subtract":  Subtract,
	"max":       Max,
	"min":       Min,
}

// ParseMergeOp resolves an operator by its configuration name.
func ParseMergeOp(name string) (MergeOp, error) {
	op, ok := mergeOps[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		names := make([]string, 0, len(mergeOps))
		for n := range mergeOps {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown merge operator %q (want one of %s)", name, strings.Join(names, ", "))
	}
	return op, nil
}

// MergePolicy selects the operator applied to each effect key.
// The zero value accumulates every key.
type MergePolicy struct {
	Default MergeOp
	PerKey  map[string]MergeOp
}

// Uniform returns a policy applying op to every key.
func Uniform(op MergeOp) MergePolicy {
	return MergePolicy{Default: op}
}

// WithKey returns a copy of the policy overriding the operator for one key.
func (p MergePolicy) WithKey(key string, op MergeOp) MergePolicy {
	perKey := make(map[string]MergeOp, len(p.PerKey)+1)
	for k, v := range p.PerKey {
		perKey[k] = v
	}
	perKey[key] = op
	return MergePolicy{Default: p.Default, PerKey: perKey}
}

func (p MergePolicy) opFor(key string) MergeOp {
	if op, ok := p.PerKey[key]; ok && op != nil {
		return op
	}
	if p.Default != nil {
		return p.Default
	}
	return Add
}
