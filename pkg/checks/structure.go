package checks

import (
	"strings"

	"github.com/aretw0/markcheck/pkg/document"
	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/feedback"
)

// Check names, as used in scripts and error messages.
const (
	NameCheckDoctype = "check_doctype"
	NameCheckHTML    = "check_html"
	NameCheckHead    = "check_head"
	NameCheckBody    = "check_body"
	NameCheckTag     = "check_tag"
	NameHasCode      = "has_code"
	NameHasEqualText = "has_equal_text"
	NameHasEqualAttr = "has_equal_attr"
)

// Default messages of the structural checks.
const (
	DoctypeMissingMsg = "Are you sure you defined `<{{tag}}>`?"
	DoctypeExpandMsg  = "Did you correctly specify the `<{{tag}}>`?"
	TagMissingMsg     = "Are you sure you included `<{{tag}}>` tag?"
	TagExpandMsg      = "Inspect the `<{{tag}}>` tag"
	ChildMissingMsg   = "Did you include the {{index}}`{{tag}}` tag properly?"
	ChildExpandMsg    = "Check the {{index}}`{{tag}}` tag"
)

const doctypeTag = "!DOCTYPE"

// CheckDoctype checks that the current scope starts with a <!DOCTYPE>
// declaration and narrows the scope to it.
//
// Every structural check returns the narrowed child state even when the
// submission lacks the element; the accompanying *domain.Failure is what stops
// the chain.
func CheckDoctype(s *domain.State, opts ...Option) (*domain.State, error) {
	o := newOptions(opts)
	values := o.values(map[string]string{feedback.KeyTag: doctypeTag})

	solution := s.Solution().Doctype()
	if solution == nil {
		return nil, domain.NewInstructorError(NameCheckDoctype, "couldn't find `<%s>` tag in solution.", doctypeTag)
	}

	student := s.Student().Doctype()
	child := s.ToChild(feedback.NewMessage(o.expand(DoctypeExpandMsg), values, true), student, solution)
	if student == nil {
		return child, s.Report(o.missing(DoctypeMissingMsg), values, o.append(false))
	}
	return child, nil
}

// CheckHTML checks the presence of the <html> element.
func CheckHTML(s *domain.State, opts ...Option) (*domain.State, error) {
	return checkShortcut(s, NameCheckHTML, "html", (*document.Node).HTML, opts)
}

// CheckHead checks the presence of the <head> element.
func CheckHead(s *domain.State, opts ...Option) (*domain.State, error) {
	return checkShortcut(s, NameCheckHead, "head", (*document.Node).Head, opts)
}

// CheckBody checks the presence of the <body> element.
func CheckBody(s *domain.State, opts ...Option) (*domain.State, error) {
	return checkShortcut(s, NameCheckBody, "body", (*document.Node).Body, opts)
}

func checkShortcut(s *domain.State, check, tag string, find func(*document.Node) *document.Node, opts []Option) (*domain.State, error) {
	o := newOptions(opts)
	values := o.values(map[string]string{feedback.KeyTag: tag})

	solution := find(s.Solution())
	if !solution.IsElement() {
		if tag == "html" {
			return nil, domain.NewInstructorError(check, "couldn't find `<%s>` tag in solution", tag)
		}
		return nil, domain.NewInstructorError(check, "couldn't find `<%s>` tag in `<%s>`", tag, s.Solution().Name())
	}

	student := find(s.Student())
	child := s.ToChild(feedback.NewMessage(o.expand(TagExpandMsg), values, true), student, solution)
	if !student.IsElement() {
		return child, s.Report(o.missing(TagMissingMsg), values, o.append(false))
	}
	return child, nil
}

// CheckTag checks the index-th direct child named name of the current scope.
// Only immediate children are considered:
//
//	<body>
//	  <div>          <!-- CheckTag(s, "div", WithIndex(0)) -->
//	    <div></div>  <!-- not a child of body -->
//	  </div>
//	  <div></div>    <!-- CheckTag(s, "div", WithIndex(1)) -->
//	</body>
//
// The ordinal ("2nd ") is only mentioned in messages when the reference scope
// has more than one sibling with that name.
func CheckTag(s *domain.State, name string, opts ...Option) (*domain.State, error) {
	o := newOptions(opts)
	tag := strings.ToLower(strings.TrimSpace(name))
	if tag == "" {
		return nil, &domain.ArgumentError{Check: NameCheckTag, Arg: "name", Reason: "tag name must not be empty"}
	}
	if o.Index < 0 {
		return nil, &domain.ArgumentError{Check: NameCheckTag, Arg: "index", Reason: "index must not be negative"}
	}

	solutionTags := s.Solution().FindDirectChildren(tag)
	if len(solutionTags) <= o.Index {
		return nil, domain.NewInstructorError(NameCheckTag, "couldn't find `<%s>` tag in `<%s>` at index %d", tag, s.Solution().Name(), o.Index)
	}
	studentTags := s.Student().FindDirectChildren(tag)

	index := ""
	if len(solutionTags) > 1 {
		index = Ordinal(o.Index+1) + " "
	}
	values := o.values(map[string]string{
		feedback.KeyTag:   tag,
		feedback.KeyIndex: index,
	})

	var student *document.Node
	if o.Index < len(studentTags) {
		student = studentTags[o.Index]
	}
	child := s.ToChild(feedback.NewMessage(o.expand(ChildExpandMsg), values, true), student, solutionTags[o.Index])
	if student == nil {
		return child, s.Report(o.missing(ChildMissingMsg), values, o.append(true))
	}
	return child, nil
}
