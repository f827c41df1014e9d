package feedback

import "strings"

// Compose turns the context path of a failure and its conclusion into a single
// explanation.
//
// The innermost context message is described in full, older ancestors are
// reduced to a breadcrumb of their index and tag values, and the conclusion is
// appended after a ". " separator:
//
//	Inspect the `<body>` tag with in `html`. Expected attribute `class` ...
//
// When the conclusion does not chain, it is returned alone.
func Compose(path []*Message, conclusion Message) string {
	final := conclusion.Describe()
	if !conclusion.Chain {
		return final
	}

	msgs := make([]*Message, 0, len(path))
	for _, m := range path {
		if m != nil {
			msgs = append(msgs, m)
		}
	}

	prev := ""
	if n := len(msgs); n > 0 {
		prev = msgs[n-1].Describe()
		msgs = msgs[:n-1]
	}

	var sb strings.Builder
	sb.WriteString(prev)
	sb.WriteString(breadcrumb(msgs))
	if prev != "" {
		sb.WriteString(". ")
	}
	sb.WriteString(final)
	return sb.String()
}

func breadcrumb(msgs []*Message) string {
	if len(msgs) == 0 {
		return ""
	}
	crumbs := make([]string, len(msgs))
	for i, m := range msgs {
		crumbs[i] = m.crumb()
	}
	return " with in `" + strings.Join(crumbs, " > ") + "`"
}
