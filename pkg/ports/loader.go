package ports

import (
	"context"

	"github.com/aretw0/markcheck/pkg/exercise"
)

// ExerciseLoader defines how exercises are retrieved by id.
// This allows the catalog (directory, memory) to be decoupled from transports.
type ExerciseLoader interface {
	// GetExercise retrieves an exercise by id.
	// Returns domain.ErrExerciseNotFound if the id is unknown.
	GetExercise(ctx context.Context, id string) (*exercise.Exercise, error)

	// ListExercises returns the ids of every available exercise, sorted.
	ListExercises(ctx context.Context) ([]string, error)
}
