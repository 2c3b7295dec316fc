package tests

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/aretw0/viterbi/pkg/ports"
)

// ModelLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.ModelLoader.
// expected holds the definitions the loader was seeded with.
func ModelLoaderContractTest(t *testing.T, loader ports.ModelLoader, expected map[string]*domain.Definition) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Success", func(t *testing.T) {
		for name, want := range expected {
			got, err := loader.Get(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error getting model %s: %v", name, err)
			}
			if got.Name != name {
				t.Errorf("name mismatch: got %q, want %q", got.Name, name)
			}
			if !slices.Equal(got.States, want.States) {
				t.Errorf("states mismatch for %s: got %v, want %v", name, got.States, want.States)
			}
			if !slices.Equal(got.Symbols, want.Symbols) {
				t.Errorf("symbols mismatch for %s: got %v, want %v", name, got.Symbols, want.Symbols)
			}
			if _, err := got.Compile(); err != nil {
				t.Errorf("model %s does not compile: %v", name, err)
			}
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := loader.Get(ctx, "non-existent-model")
		if !errors.Is(err, domain.ErrModelNotFound) {
			t.Errorf("expected ErrModelNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing models: %v", err)
		}
		if len(names) != len(expected) {
			t.Errorf("expected %d models, got %d: %v", len(expected), len(names), names)
		}
		for name := range expected {
			if !slices.Contains(names, name) {
				t.Errorf("expected model %s in list", name)
			}
		}
		if !slices.IsSorted(names) {
			t.Errorf("list is not sorted: %v", names)
		}
	})
}
