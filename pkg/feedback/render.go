package feedback

import (
	"regexp"
	"strings"
	"text/template"
)

// legacyPrefix marks templates written for the original message engine.
const legacyPrefix = "__JINJA__:"

// placeholder matches bare {{name}} references, with optional whitespace and
// text/template trim markers ({{- name -}}).
var placeholder = regexp.MustCompile(`\{\{(-\s)?\s*([A-Za-z_][A-Za-z0-9_]*)\s*(\s-)?\}\}`)

// keywords of text/template that look like bare names but must stay actions.
var keywords = map[string]bool{
	"end": true, "else": true, "break": true, "continue": true,
	"nil": true, "true": true, "false": true,
}

// Render substitutes values into a message template.
//
// Bare {{name}} placeholders are looked up in values; names without a value
// render as an empty string. Full text/template actions such as
// {{if .sol}}...{{end}} are also available. Render never fails: a template that
// cannot be parsed or executed falls back to plain placeholder substitution.
func Render(tmpl string, values map[string]string) string {
	tmpl = strings.TrimPrefix(tmpl, legacyPrefix)
	if !strings.Contains(tmpl, "{{") {
		return tmpl
	}
	if values == nil {
		values = map[string]string{}
	}

	rewritten := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		sub := placeholder.FindStringSubmatch(m)
		if keywords[sub[2]] {
			return m
		}
		open, end := "{{", "}}"
		if sub[1] != "" {
			open = "{{- "
		}
		if sub[3] != "" {
			end = " -}}"
		}
		return open + `index . "` + sub[2] + `"` + end
	})

	t, err := template.New("message").Option("missingkey=zero").Parse(rewritten)
	if err != nil {
		return substitute(tmpl, values)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, values); err != nil {
		return substitute(tmpl, values)
	}
	return sb.String()
}

func substitute(tmpl string, values map[string]string) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		return values[placeholder.FindStringSubmatch(m)[2]]
	})
}
