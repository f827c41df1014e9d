package domain

import (
	"errors"
	"fmt"

	"github.com/aretw0/markcheck/pkg/feedback"
)

var (
	// ErrCacheMiss is returned by result caches when a key is not present.
	ErrCacheMiss = errors.New("cache miss")
	// ErrExerciseNotFound is returned by exercise loaders for unknown ids.
	ErrExerciseNotFound = errors.New("exercise not found")
)

// Failure is the signal raised when a submission does not meet an expectation.
// It carries the context path of the failing state and the final message.
type Failure struct {
	Path       []*feedback.Message
	Conclusion feedback.Message
}

// Message composes the explanation shown to the submitter.
func (f *Failure) Message() string {
	return feedback.Compose(f.Path, f.Conclusion)
}

func (f *Failure) Error() string {
	return f.Message()
}

// InstructorError signals a defect in the reference document or the check
// configuration. It is never the submitter's fault and never becomes a payload.
type InstructorError struct {
	Check  string
	Reason string
}

func (e *InstructorError) Error() string {
	return fmt.Sprintf("`%s()` %s", e.Check, e.Reason)
}

// NewInstructorError builds an InstructorError with a formatted reason.
func NewInstructorError(check, format string, args ...any) *InstructorError {
	return &InstructorError{Check: check, Reason: fmt.Sprintf(format, args...)}
}

// ArgumentError is a local validation failure of a check argument. It is
// raised before any tree inspection.
type ArgumentError struct {
	Check  string
	Arg    string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument %q: %s", e.Check, e.Arg, e.Reason)
}

// IsFailure reports whether err is, or wraps, a submission failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

// IsInstructorError reports whether err is, or wraps, an authoring error.
func IsInstructorError(err error) bool {
	var ie *InstructorError
	return errors.As(err, &ie)
}

// IsArgumentError reports whether err is, or wraps, an argument error.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
