package memory

import (
	"context"
	"sync"

	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/feedback"
)

// Cache implements ports.ResultCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]feedback.Result
	mu   sync.RWMutex
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]feedback.Result),
	}
}

// Get retrieves a result from memory.
func (c *Cache) Get(ctx context.Context, key string) (feedback.Result, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.data[key]
	if !ok {
		return feedback.Result{}, domain.ErrCacheMiss
	}
	return r, nil
}

// Set stores a result in memory.
func (c *Cache) Set(ctx context.Context, key string, result feedback.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = result
	return nil
}

// Delete removes a result.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
