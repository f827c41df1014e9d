package domain

import (
	"context"
	"errors"
	"time"
)

// Outcome classifies the result of a check or a whole evaluation.
type Outcome int

const (
	// OutcomeContinue means the chain may proceed (or finished successfully).
	OutcomeContinue Outcome = iota
	// OutcomeFailure means the submission failed a check.
	OutcomeFailure
	// OutcomeAuthoringError means the reference, the script or a check
	// argument is invalid. It must never be shown as a grade.
	OutcomeAuthoringError
	// OutcomeCanceled means the evaluation was interrupted by its context
	// before reaching a verdict.
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeFailure:
		return "failure"
	case OutcomeAuthoringError:
		return "authoring_error"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Classify maps the error returned by a check to an Outcome. Context
// cancellation is its own outcome; every other error that is not a submission
// failure is treated as an authoring error.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeContinue
	}
	var f *Failure
	if errors.As(err, &f) {
		return OutcomeFailure
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return OutcomeCanceled
	}
	return OutcomeAuthoringError
}

// EventType defines the category of the event.
type EventType string

const (
	EventEvaluationStart EventType = "evaluation_start"
	EventStep            EventType = "step"
	EventEvaluationEnd   EventType = "evaluation_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent is emitted after every check of a chain.
type StepEvent struct {
	EventBase
	Chain   int     `json:"chain"`
	Step    int     `json:"step"`
	Check   string  `json:"check"`
	Depth   int     `json:"depth"`
	Outcome Outcome `json:"outcome"`
}

// EvaluationEvent is emitted when an evaluation starts and ends.
type EvaluationEvent struct {
	EventBase
	Outcome  Outcome       `json:"outcome"`
	Correct  bool          `json:"correct"`
	Cached   bool          `json:"cached"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnEvaluationStart func(context.Context, *EvaluationEvent)
	OnStep            func(context.Context, *StepEvent)
	OnEvaluationEnd   func(context.Context, *EvaluationEvent)
}

// MergeHooks returns hooks that call every non-nil hook of hs in order.
func MergeHooks(hs ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	for _, h := range hs {
		merged.OnEvaluationStart = chain(merged.OnEvaluationStart, h.OnEvaluationStart)
		merged.OnStep = chain(merged.OnStep, h.OnStep)
		merged.OnEvaluationEnd = chain(merged.OnEvaluationEnd, h.OnEvaluationEnd)
	}
	return merged
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
