package ports

import (
	"context"

	"github.com/aretw0/markcheck/pkg/feedback"
)

// ResultCache stores evaluation results. Evaluations are deterministic, so a
// cached result is interchangeable with a fresh one.
type ResultCache interface {
	// Get returns the result stored under key.
	// Returns domain.ErrCacheMiss if the key is not present.
	Get(ctx context.Context, key string) (feedback.Result, error)

	// Set stores a result under key.
	Set(ctx context.Context, key string, result feedback.Result) error

	// Delete removes the result stored under key.
	Delete(ctx context.Context, key string) error
}
