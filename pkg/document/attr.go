package document

import (
	"slices"
	"strings"
)

// AttrValue holds an attribute value. Most attributes are scalar strings;
// whitespace-separated token attributes such as class are lists.
type AttrValue struct {
	scalar string
	list   []string
	isList bool
}

// Scalar builds a scalar attribute value.
func Scalar(v string) AttrValue {
	return AttrValue{scalar: v}
}

// List builds a list attribute value.
func List(vs ...string) AttrValue {
	out := make([]string, len(vs))
	copy(out, vs)
	return AttrValue{list: out, isList: true}
}

// IsList reports whether the value is a token list.
func (v AttrValue) IsList() bool { return v.isList }

// Values returns the tokens of a list value, or the scalar as a single token.
func (v AttrValue) Values() []string {
	if !v.isList {
		return []string{v.scalar}
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out
}

// String renders the value the way it appears in markup: list tokens are
// joined by a single space.
func (v AttrValue) String() string {
	if v.isList {
		return strings.Join(v.list, " ")
	}
	return v.scalar
}

// Equal compares two values exactly: same shape, same tokens in the same order.
func (v AttrValue) Equal(o AttrValue) bool {
	if v.isList != o.isList {
		return false
	}
	if !v.isList {
		return v.scalar == o.scalar
	}
	return slices.Equal(v.list, o.list)
}

// SameSet reports whether both values hold the same set of tokens, ignoring
// order and repetition.
func (v AttrValue) SameSet(o AttrValue) bool {
	a, b := tokenSet(v.Values()), tokenSet(o.Values())
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func tokenSet(vs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(vs))
	for _, s := range vs {
		set[s] = struct{}{}
	}
	return set
}

// listAttrs lists the attributes parsed as whitespace-separated token lists,
// keyed by element name; "*" applies to every element.
var listAttrs = map[string][]string{
	"*":      {"class", "accesskey", "dropzone"},
	"a":      {"rel", "rev"},
	"link":   {"rel", "rev"},
	"td":     {"headers"},
	"th":     {"headers"},
	"form":   {"accept-charset"},
	"object": {"archive"},
	"area":   {"rel"},
	"icon":   {"sizes"},
	"iframe": {"sandbox"},
	"output": {"for"},
}

func isListAttr(tag, key string) bool {
	return slices.Contains(listAttrs["*"], key) || slices.Contains(listAttrs[tag], key)
}

func newAttrValue(tag, key, raw string) AttrValue {
	if isListAttr(tag, key) {
		return List(strings.Fields(raw)...)
	}
	return Scalar(raw)
}
