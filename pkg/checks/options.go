package checks

import (
	"fmt"
	"maps"
)

// Options holds the behavior-affecting settings of a check. Each check reads
// only the fields it recognizes; template values never change behavior.
type Options struct {
	Index        int
	MissingMsg   string
	ExpandMsg    string
	IncorrectMsg string
	Append       *bool
	Fixed        *bool
	ShowText     bool
	CheckValues  *bool
	Attrs        []string
	AttrsSet     bool
	Values       map[string]string
}

// Option configures a check.
type Option func(*Options)

// WithIndex selects the n-th (0-based) same-named sibling.
func WithIndex(i int) Option {
	return func(o *Options) { o.Index = i }
}

// WithMissingMsg overrides the message shown when an element or attribute is missing.
func WithMissingMsg(msg string) Option {
	return func(o *Options) { o.MissingMsg = msg }
}

// WithExpandMsg overrides the context message attached when the scope narrows.
func WithExpandMsg(msg string) Option {
	return func(o *Options) { o.ExpandMsg = msg }
}

// WithIncorrectMsg overrides the message shown when a value does not match.
func WithIncorrectMsg(msg string) Option {
	return func(o *Options) { o.IncorrectMsg = msg }
}

// WithAppend controls whether the inherited context is kept in the failure
// message (true) or discarded so only this check's message is shown (false).
func WithAppend(v bool) Option {
	return func(o *Options) { o.Append = &v }
}

// WithFixed selects literal matching (true) or regular expressions (false) in HasCode.
func WithFixed(fixed bool) Option {
	return func(o *Options) { o.Fixed = &fixed }
}

// WithShowText includes both texts in the HasEqualText failure message.
func WithShowText(show bool) Option {
	return func(o *Options) { o.ShowText = show }
}

// WithCheckValues toggles value comparison in HasEqualAttr. When false only
// the presence of attributes is checked.
func WithCheckValues(check bool) Option {
	return func(o *Options) { o.CheckValues = &check }
}

// WithAttrs restricts HasEqualAttr to the named attributes.
func WithAttrs(names ...string) Option {
	return func(o *Options) {
		o.Attrs = append([]string(nil), names...)
		o.AttrsSet = true
	}
}

// WithValue adds a template value available to every message of the check.
func WithValue(key string, value any) Option {
	return func(o *Options) {
		if o.Values == nil {
			o.Values = make(map[string]string)
		}
		o.Values[key] = fmt.Sprint(value)
	}
}

// WithValues adds several template values.
func WithValues(values map[string]string) Option {
	return func(o *Options) {
		if o.Values == nil {
			o.Values = make(map[string]string, len(values))
		}
		maps.Copy(o.Values, values)
	}
}

func newOptions(opts []Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Options) missing(def string) string {
	return orDefault(o.MissingMsg, def)
}

func (o *Options) expand(def string) string {
	return orDefault(o.ExpandMsg, def)
}

func (o *Options) incorrect(def string) string {
	return orDefault(o.IncorrectMsg, def)
}

func (o *Options) append(def bool) bool {
	return boolOr(o.Append, def)
}

// values merges user template values with the reserved ones set by a check.
// Reserved values win.
func (o *Options) values(reserved map[string]string) map[string]string {
	out := make(map[string]string, len(o.Values)+len(reserved))
	maps.Copy(out, o.Values)
	maps.Copy(out, reserved)
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
