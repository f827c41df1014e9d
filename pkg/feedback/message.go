package feedback

import "maps"

// Well-known template values. The breadcrumb of a composed explanation is built
// from the raw Index and Tag values of each context message.
const (
	KeyTag   = "tag"
	KeyIndex = "index"
)

// Message is a template plus the values substituted into it.
//
// Chain controls composition when the message is the final conclusion of a
// failure: when false, ancestor context is discarded and only this message is
// shown.
type Message struct {
	Template string
	Values   map[string]string
	Chain    bool
}

// NewMessage builds a message, copying values so later changes by the caller
// never leak into it.
func NewMessage(template string, values map[string]string, chain bool) *Message {
	return &Message{
		Template: template,
		Values:   maps.Clone(values),
		Chain:    chain,
	}
}

// Describe renders the message template with its values.
func (m *Message) Describe() string {
	if m == nil {
		return ""
	}
	return Render(m.Template, m.Values)
}

// crumb returns the breadcrumb fragment of the message, e.g. "2nd div".
func (m *Message) crumb() string {
	return m.Values[KeyIndex] + m.Values[KeyTag]
}
