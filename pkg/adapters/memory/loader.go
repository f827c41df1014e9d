package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/exercise"
)

// Loader implements ports.ExerciseLoader using an in-memory map.
type Loader struct {
	exercises map[string]*exercise.Exercise
}

// NewLoader creates a new Loader from raw exercise documents keyed by id.
func NewLoader(data map[string]string) (*Loader, error) {
	exercises := make(map[string]*exercise.Exercise, len(data))
	for id, raw := range data {
		ex, err := exercise.Parse(id, []byte(raw))
		if err != nil {
			return nil, err
		}
		exercises[ex.ID] = ex
	}
	return &Loader{exercises: exercises}, nil
}

// NewFromExercises creates a new Loader from already built exercises.
func NewFromExercises(exercises ...*exercise.Exercise) (*Loader, error) {
	data := make(map[string]*exercise.Exercise, len(exercises))
	for _, ex := range exercises {
		if ex.ID == "" {
			return nil, fmt.Errorf("exercise missing ID")
		}
		data[ex.ID] = ex
	}
	return &Loader{exercises: data}, nil
}

// GetExercise retrieves an exercise by id.
func (l *Loader) GetExercise(ctx context.Context, id string) (*exercise.Exercise, error) {
	ex, ok := l.exercises[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrExerciseNotFound, id)
	}
	return ex, nil
}

// ListExercises returns all available exercise ids.
func (l *Loader) ListExercises(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.exercises))
	for k := range l.exercises {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
