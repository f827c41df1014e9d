package script

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/registry"
)

// Validate checks that every step names a registered check.
func (s *Script) Validate(r *registry.Registry) error {
	for ci, chain := range s.Chains {
		for si, step := range chain {
			if _, ok := r.Lookup(step.Check); !ok {
				return &ScriptError{Line: step.Line, Chain: ci, Step: si, Err: fmt.Errorf("unknown check %q", step.Check)}
			}
		}
	}
	return nil
}

// Run evaluates every chain from root, in order, and returns the first error.
//
// The returned error is nil when every chain completes, a *domain.Failure when
// the submission fails a check, and any other error for authoring problems.
// Cancellation of ctx is observed between steps.
func (s *Script) Run(ctx context.Context, root *domain.State, r *registry.Registry, hooks domain.LifecycleHooks) error {
	if err := s.Validate(r); err != nil {
		return err
	}

	for ci, chain := range s.Chains {
		state := root
		for si, step := range chain {
			if err := ctx.Err(); err != nil {
				return err
			}

			c, _ := r.Lookup(step.Check)
			args, err := bind(step, c)
			if err == nil {
				var next *domain.State
				next, err = c.Run(state, args)
				if err == nil {
					state = next
				}
			}

			if hooks.OnStep != nil {
				hooks.OnStep(ctx, &domain.StepEvent{
					EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep},
					Chain:     ci,
					Step:      si,
					Check:     step.Check,
					Depth:     state.Depth(),
					Outcome:   domain.Classify(err),
				})
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
