package tests

import (
	"context"
	"testing"

	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/ports"
)

// CatalogueLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.CatalogueLoader.
func CatalogueLoaderContractTest(t *testing.T, loader ports.CatalogueLoader, want domain.Catalogue) {
	t.Helper()
	ctx := context.Background()

	t.Run("LoadCatalogue", func(t *testing.T) {
		got, err := loader.LoadCatalogue(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading catalogue: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d actions, got %d", len(want), len(got))
		}
		for key, expected := range want {
			action, ok := got[key]
			if !ok {
				t.Errorf("action %s missing from catalogue", key)
				continue
			}
			if action.Key != key {
				t.Errorf("action %s reports key %q", key, action.Key)
			}
			if action.Cost != expected.Cost {
				t.Errorf("cost mismatch for %s. got %v, want %v", key, action.Cost, expected.Cost)
			}
			if !action.Preconditions.Equal(expected.Preconditions) {
				t.Errorf("preconditions mismatch for %s. got %v, want %v", key, action.Preconditions, expected.Preconditions)
			}
			if !action.Effects.Equal(expected.Effects) {
				t.Errorf("effects mismatch for %s. got %v, want %v", key, action.Effects, expected.Effects)
			}
		}
	})

	t.Run("ListActions", func(t *testing.T) {
		keys, err := loader.ListActions(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing actions: %v", err)
		}

		if len(keys) != len(want) {
			t.Errorf("expected %d actions, got %d", len(want), len(keys))
		}

		lookup := make(map[string]bool)
		for _, k := range keys {
			lookup[k] = true
		}
		for k := range want {
			if !lookup[k] {
				t.Errorf("action %s missing from list", k)
			}
		}
	})
}
