package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/markcheck/pkg/domain"
)

// StepFunction defines the signature of a check exposed to scripts.
// It receives the current state and the decoded step arguments and returns
// the next state or an error.
type StepFunction func(s *domain.State, args map[string]any) (*domain.State, error)

// Check is a named check available to scripts.
type Check struct {
	Name string
	// Positional names the argument a scalar step value is bound to, e.g.
	// "name" for check_tag. Empty when the check takes no positional argument.
	Positional string
	Run        StepFunction
}

// Registry manages the available checks.
type Registry struct {
	mu     sync.RWMutex
	checks map[string]Check
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		checks: make(map[string]Check),
	}
}

// Register adds a check to the registry.
// If a check with the same name exists, it is overwritten.
func (r *Registry) Register(c Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[c.Name] = c
}

// Lookup returns the check registered under name.
func (r *Registry) Lookup(name string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.checks[name]
	return c, ok
}

// Names returns the registered check names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Execute looks up a check by name and runs it.
// Returns an error if the check is not found.
func (r *Registry) Execute(s *domain.State, name string, args map[string]any) (*domain.State, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("check not found: %s", name)
	}
	return c.Run(s, args)
}
