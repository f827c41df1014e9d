package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/exercise"
)

var extensions = []string{".yaml", ".yml", ".json"}

// Loader implements ports.ExerciseLoader over a directory of exercise files.
// Each file holds one exercise; its name without extension is the id.
// Files are read on every call, so edits are picked up without a restart.
type Loader struct {
	BasePath string
}

// NewLoader creates a new Loader reading from basePath.
// If basePath is empty, it defaults to "exercises".
func NewLoader(basePath string) *Loader {
	if basePath == "" {
		basePath = "exercises"
	}
	return &Loader{BasePath: basePath}
}

// GetExercise reads and parses the exercise file for id.
func (l *Loader) GetExercise(ctx context.Context, id string) (*exercise.Exercise, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return nil, fmt.Errorf("%w: invalid id %q", domain.ErrExerciseNotFound, id)
	}

	for _, ext := range extensions {
		path := filepath.Join(l.BasePath, id+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read exercise file: %w", err)
		}
		ex, err := exercise.Parse(id, data)
		if err != nil {
			return nil, err
		}
		ex.ID = id
		return ex, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrExerciseNotFound, id)
}

// ListExercises returns the ids of every exercise file, sorted.
func (l *Loader) ListExercises(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if !isExerciseExt(ext) {
			continue
		}
		id := strings.TrimSuffix(name, ext)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func isExerciseExt(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}
