package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/ports"
)

// ExerciseLoaderContractTest is a reusable test suite that verifies if an
// adapter complies with ports.ExerciseLoader. solutions maps every exercise id
// the loader holds to its expected reference document.
func ExerciseLoaderContractTest(t *testing.T, loader ports.ExerciseLoader, solutions map[string]string) {
	t.Helper()
	ctx := context.Background()

	// 1. Test GetExercise (Success)
	t.Run("GetExercise_Success", func(t *testing.T) {
		for id, expected := range solutions {
			ex, err := loader.GetExercise(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting exercise %s: %v", id, err)
			}
			if ex.ID != id {
				t.Errorf("id mismatch: got %q, want %q", ex.ID, id)
			}
			if ex.Solution != expected {
				t.Errorf("solution mismatch for %s. got %q, want %q", id, ex.Solution, expected)
			}
		}
	})

	// 2. Test GetExercise (NotFound)
	t.Run("GetExercise_NotFound", func(t *testing.T) {
		_, err := loader.GetExercise(ctx, "non-existent-exercise")
		if !errors.Is(err, domain.ErrExerciseNotFound) {
			t.Errorf("expected ErrExerciseNotFound, got %v", err)
		}
	})

	// 3. Test ListExercises
	t.Run("ListExercises", func(t *testing.T) {
		ids, err := loader.ListExercises(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing exercises: %v", err)
		}

		if len(ids) != len(solutions) {
			t.Errorf("expected %d exercises, got %d", len(solutions), len(ids))
		}
		for i := 1; i < len(ids); i++ {
			if ids[i-1] > ids[i] {
				t.Errorf("ids are not sorted: %v", ids)
			}
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for id := range solutions {
			if !lookup[id] {
				t.Errorf("exercise %s missing from list", id)
			}
		}
	})
}
