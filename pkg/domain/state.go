package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/markcheck/pkg/document"
	"github.com/aretw0/markcheck/pkg/feedback"
)

// RootPosition is how the whole submission is referred to.
const RootPosition = "Code"

// State is a node of the derivation tree of a check chain.
//
// A State is immutable once built. It holds the current scope in the
// submitted and reference documents, the context message its creator attached
// and the ancestors it was derived from. Ancestors are kept as an owned list
// copied into every child rather than a back pointer, so a State can be shared
// freely between goroutines.
type State struct {
	studentCode  string
	solutionCode string
	studentRoot  *document.Node
	solutionRoot *document.Node

	student  *document.Node
	solution *document.Node

	context *feedback.Message
	path    []*feedback.Message
	history []*State
}

// NewState builds the root state of an evaluation. Both codes are trimmed and
// parsed; the scope starts at the two document roots.
func NewState(studentCode, solutionCode string) (*State, error) {
	studentCode = strings.TrimSpace(studentCode)
	solutionCode = strings.TrimSpace(solutionCode)

	studentRoot, err := document.Parse(studentCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse student code: %w", err)
	}
	solutionRoot, err := document.Parse(solutionCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse solution code: %w", err)
	}

	return &State{
		studentCode:  studentCode,
		solutionCode: solutionCode,
		studentRoot:  studentRoot,
		solutionRoot: solutionRoot,
		student:      studentRoot,
		solution:     solutionRoot,
	}, nil
}

// Student returns the current scope in the submission. It is nil when the
// submission lacks the element this state was narrowed to.
func (s *State) Student() *document.Node { return s.student }

// Solution returns the current scope in the reference document.
func (s *State) Solution() *document.Node { return s.solution }

// StudentRoot returns the whole parsed submission.
func (s *State) StudentRoot() *document.Node { return s.studentRoot }

// SolutionRoot returns the whole parsed reference document.
func (s *State) SolutionRoot() *document.Node { return s.solutionRoot }

// StudentCode returns the trimmed submission source.
func (s *State) StudentCode() string { return s.studentCode }

// SolutionCode returns the trimmed reference source.
func (s *State) SolutionCode() string { return s.solutionCode }

// Context returns the message attached when this state was derived, or nil.
func (s *State) Context() *feedback.Message { return s.context }

// Path returns the context messages inherited from the root, outermost first.
func (s *State) Path() []*feedback.Message { return slices.Clone(s.path) }

// History returns the ancestors of this state, root first.
func (s *State) History() []*State { return slices.Clone(s.history) }

// Parent returns the state this one was derived from, or nil for the root.
func (s *State) Parent() *State {
	if len(s.history) == 0 {
		return nil
	}
	return s.history[len(s.history)-1]
}

// Depth is the number of derivation steps from the root.
func (s *State) Depth() int { return len(s.history) }

// Position describes where in the submission this state points.
func (s *State) Position() string { return RootPosition }

// ToChild derives a state narrowed to a new scope. When msg is non-nil it is
// appended to the inherited context path. The receiver is never modified.
func (s *State) ToChild(msg *feedback.Message, student, solution *document.Node) *State {
	child := *s
	child.student = student
	child.solution = solution
	child.context = msg
	child.path = slices.Clone(s.path)
	if msg != nil {
		child.path = append(child.path, msg)
	}
	child.history = append(slices.Clone(s.history), s)
	return &child
}

// Report builds the failure signal for this state. When chain is false the
// inherited context is discarded and only the final message will be shown.
func (s *State) Report(template string, values map[string]string, chain bool) *Failure {
	f := &Failure{
		Conclusion: *feedback.NewMessage(template, values, chain),
	}
	if chain {
		f.Path = slices.Clone(s.path)
	}
	return f
}
