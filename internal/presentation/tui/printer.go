package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/markcheck/pkg/feedback"
	"github.com/muesli/termenv"
	"golang.org/x/net/html"
)

// Printer writes evaluation results for a human reader.
type Printer struct {
	out     io.Writer
	profile termenv.Profile
	render  func(string) (string, error)
}

// NewPrinter creates a Printer. A styled printer colours the verdict and
// renders the explanation as markdown; a plain one writes text only.
func NewPrinter(out io.Writer, styled bool, width int) *Printer {
	p := &Printer{out: out, profile: termenv.Ascii}
	if styled {
		p.profile = termenv.ColorProfile()
		p.render = NewRenderer(width)
	}
	return p
}

// Print writes the verdict of one submission, followed by the explanation
// when it failed. name labels the submission and may be empty.
func (p *Printer) Print(name string, res feedback.Result) error {
	verdict := p.profile.String("PASS").Foreground(p.profile.Color("#22c55e")).Bold()
	if !res.Correct {
		verdict = p.profile.String("FAIL").Foreground(p.profile.Color("#ef4444")).Bold()
	}

	line := verdict.String()
	if name != "" {
		line += " " + name
	}
	if _, err := fmt.Fprintln(p.out, line); err != nil {
		return err
	}
	if res.Correct {
		return nil
	}

	msg := Explanation(res)
	if p.render != nil {
		if rendered, err := p.render(msg); err == nil {
			msg = strings.TrimRight(rendered, "\n")
		}
	} else {
		msg = "  " + msg
	}
	_, err := fmt.Fprintln(p.out, msg)
	return err
}

// Explanation recovers the composed explanation from a payload message,
// which carries it HTML-escaped.
func Explanation(res feedback.Result) string {
	return html.UnescapeString(res.Message)
}
