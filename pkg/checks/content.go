package checks

import (
	"regexp"
	"strings"

	"github.com/aretw0/markcheck/pkg/domain"
)

// Default messages of the content checks.
const (
	CodeIncorrectMsg = "Didn't find {{text}} in your code."
	TextIncorrectMsg = "Expected text not found."
	TextShowMsg      = "Expected text `{{sol}}` but found `{{stu}}`."
	AttrMissingMsg   = "Expected attribute `{{attr}}` not found."
	AttrIncorrectMsg = "Expected attribute `{{attr}}` to be `\"{{sol}}\"`, but found `\"{{stu}}\"`."
)

// Template values set by the content checks.
const (
	keyText    = "text"
	keyAttr    = "attr"
	keyStudent = "stu"
	keyRefer   = "sol"
)

// HasCode searches the serialized submission for text, literally by default or
// as a regular expression with WithFixed(false). The search ignores the
// current scope and does not need the reference document. The state is
// returned unchanged.
func HasCode(s *domain.State, text string, opts ...Option) (*domain.State, error) {
	o := newOptions(opts)
	if text == "" {
		return nil, &domain.ArgumentError{Check: NameHasCode, Arg: "text", Reason: "text must not be empty"}
	}

	code := s.StudentRoot().String()
	fixed := boolOr(o.Fixed, true)

	var found bool
	if fixed {
		found = strings.Contains(code, text)
	} else {
		re, err := regexp.Compile(text)
		if err != nil {
			return nil, &domain.ArgumentError{Check: NameHasCode, Arg: "text", Reason: err.Error()}
		}
		found = re.MatchString(code)
	}
	if found {
		return s, nil
	}

	shown := "`" + text + "`"
	if !fixed {
		shown = "the pattern " + shown
	}
	return s, s.Report(o.incorrect(CodeIncorrectMsg), o.values(map[string]string{keyText: shown}), o.append(true))
}

// HasEqualText compares the normalized text of both scopes, descendants
// included. Text of <body>Hello<p>there</p></body> is "Hello there".
func HasEqualText(s *domain.State, opts ...Option) (*domain.State, error) {
	o := newOptions(opts)
	stu := s.Student().Text()
	sol := s.Solution().Text()
	if stu == sol {
		return s, nil
	}

	msg := o.incorrect(TextIncorrectMsg)
	if o.ShowText {
		msg = TextShowMsg
	}
	return s, s.Report(msg, o.values(map[string]string{keyStudent: stu, keyRefer: sol}), o.append(true))
}

// HasEqualAttr compares attributes of the two scopes. Without WithAttrs every
// attribute of the reference node is checked, in reference order. Multi-valued
// attributes such as class are compared as sets when the reference value is a
// list; everything else must match exactly.
func HasEqualAttr(s *domain.State, opts ...Option) (*domain.State, error) {
	o := newOptions(opts)
	solution := s.Solution()

	names := solution.AttrKeys()
	if o.AttrsSet {
		names = make([]string, 0, len(o.Attrs))
		for _, name := range o.Attrs {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				return nil, &domain.ArgumentError{Check: NameHasEqualAttr, Arg: "attrs", Reason: "attribute names must not be empty"}
			}
			names = append(names, name)
		}
		for _, name := range names {
			if _, ok := solution.Attr(name); !ok {
				return nil, domain.NewInstructorError(NameHasEqualAttr, "couldn't find attribute `%s` in `<%s>`.", name, solution.Name())
			}
		}
	}

	checkValues := boolOr(o.CheckValues, true)
	for _, name := range names {
		sol, _ := solution.Attr(name)
		stu, ok := s.Student().Attr(name)
		if !ok {
			return s, s.Report(o.missing(AttrMissingMsg), o.values(map[string]string{keyAttr: name}), o.append(true))
		}
		if !checkValues || stu.Equal(sol) {
			continue
		}
		if sol.IsList() && stu.SameSet(sol) {
			continue
		}
		values := o.values(map[string]string{
			keyAttr:    name,
			keyRefer:   sol.String(),
			keyStudent: stu.String(),
		})
		return s, s.Report(o.incorrect(AttrIncorrectMsg), values, o.append(true))
	}
	return s, nil
}
