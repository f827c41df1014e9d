package feedback

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

// DefaultSuccessMessage is the message of a passing evaluation.
const DefaultSuccessMessage = "Great work!"

// Format selects how a composed explanation is turned into the payload message.
type Format string

const (
	// FormatEscape HTML-escapes the explanation.
	FormatEscape Format = "escape"
	// FormatMarkdown renders the explanation as inline markdown, turning
	// `code spans` into <code> elements.
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name. The empty string selects FormatEscape.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatEscape:
		return FormatEscape, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown feedback format %q (expected %q or %q)", s, FormatEscape, FormatMarkdown)
	}
}

// Result is the payload of an evaluation.
type Result struct {
	Correct bool   `json:"correct" yaml:"correct"`
	Message string `json:"message" yaml:"message"`
}

// Reporter builds evaluation payloads.
type Reporter struct {
	Format         Format
	SuccessMessage string
}

// NewReporter returns a Reporter with the default format and success message.
func NewReporter() Reporter {
	return Reporter{
		Format:         FormatEscape,
		SuccessMessage: DefaultSuccessMessage,
	}
}

// Success builds the payload of a passing evaluation.
func (r Reporter) Success() Result {
	msg := r.SuccessMessage
	if msg == "" {
		msg = DefaultSuccessMessage
	}
	return Result{Correct: true, Message: msg}
}

// Failed builds the payload of a failing evaluation from a composed explanation.
func (r Reporter) Failed(explanation string) Result {
	return Result{Correct: false, Message: r.toHTML(explanation)}
}

func (r Reporter) toHTML(msg string) string {
	if r.Format != FormatMarkdown {
		return html.EscapeString(msg)
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(msg), &buf); err != nil {
		return html.EscapeString(msg)
	}
	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out
}
