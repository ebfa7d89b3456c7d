package dsl

import (
	"fmt"
	"sort"

	"github.com/aretw0/goap/pkg/adapters/memory"
	"github.com/aretw0/goap/pkg/domain"
)

// Builder manages the catalogue construction.
type Builder struct {
	actions map[string]*ActionBuilder
}

// New creates a new catalogue builder.
func New() *Builder {
	return &Builder{
		actions: make(map[string]*ActionBuilder),
	}
}

// Add creates a new action in the catalogue with a default cost of 1.
// If the action already exists, it returns the existing builder.
func (b *Builder) Add(key string) *ActionBuilder {
	if ab, ok := b.actions[key]; ok {
		return ab
	}
	ab := &ActionBuilder{
		key:     key,
		cost:    1,
		pre:     make(map[string]float64),
		effects: make(map[string]float64),
		builder: b,
	}
	b.actions[key] = ab
	return ab
}

// Catalogue compiles the builder into a catalogue and validates it.
func (b *Builder) Catalogue() (domain.Catalogue, error) {
	keys := make([]string, 0, len(b.actions))
	for k := range b.actions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c := make(domain.Catalogue, len(keys))
	for _, k := range keys {
		c[k] = b.actions[k].action()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Build compiles the catalogue into a memory Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	c, err := b.Catalogue()
	if err != nil {
		return nil, fmt.Errorf("failed to build catalogue: %w", err)
	}
	return memory.NewLoader(c), nil
}

// Graph compiles the catalogue into an in-memory action graph.
func (b *Builder) Graph(opts ...memory.GraphOption) (*memory.Graph, error) {
	c, err := b.Catalogue()
	if err != nil {
		return nil, fmt.Errorf("failed to build catalogue: %w", err)
	}
	return memory.NewGraph(c, opts...), nil
}
