package dsl

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/goap/pkg/domain"
)

func TestBuilder_Household(t *testing.T) {
	// 1. Build the catalogue using DSL
	b := New()

	b.Add("Idle").
		Produces("Rested", 1)

	b.Add("Work").
		Requires("Rested", 1).
		Produces("Money", 10)

	b.Add("Shop").
		Consumes("Money", 10).
		Produces("HasFood", 1)

	// 2. Compile to Loader
	loader, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	c, err := loader.LoadCatalogue(context.Background())
	if err != nil {
		t.Fatalf("LoadCatalogue() failed: %v", err)
	}

	// 3. Verify specific actions
	shop, ok := c["Shop"]
	if !ok {
		t.Fatal("Shop missing from catalogue")
	}
	if shop.Cost != 1 {
		t.Errorf("expected default cost 1, got %v", shop.Cost)
	}
	if got := shop.Preconditions.Get("Money", 0); got != 10 {
		t.Errorf("expected Money precondition 10, got %v", got)
	}
	if got := shop.Effects.Get("Money", 0); got != -10 {
		t.Errorf("expected Money effect -10, got %v", got)
	}
	if got := shop.Effects.Get("HasFood", 0); got != 1 {
		t.Errorf("expected HasFood effect 1, got %v", got)
	}

	idle := c["Idle"]
	if idle.Preconditions.Len() != 0 {
		t.Errorf("Idle should have no preconditions, got %v", idle.Preconditions)
	}
}

func TestBuilder_ChainAndReuse(t *testing.T) {
	b := New()
	b.Add("A").Cost(2).Effect("x", 1).
		Add("B").Requires("x", 1)

	// Add on an existing key returns the same builder.
	b.Add("A").Effect("y", 3)

	c, err := b.Catalogue()
	if err != nil {
		t.Fatalf("Catalogue() failed: %v", err)
	}
	if len(c) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(c))
	}
	if c["A"].Cost != 2 || c["A"].Effects.Get("y", 0) != 3 || c["A"].Effects.Get("x", 0) != 1 {
		t.Errorf("unexpected action A: %+v", c["A"])
	}
}

func TestBuilder_RejectsNegativeCost(t *testing.T) {
	b := New()
	b.Add("Broken").Cost(-1)

	_, err := b.Build()
	if err == nil {
		t.Fatal("expected error for negative cost")
	}

	var malformed *domain.MalformedEntryError
	if !errors.As(err, &malformed) || malformed.Action != "Broken" {
		t.Errorf("expected MalformedEntryError for Broken, got %v", err)
	}
}
