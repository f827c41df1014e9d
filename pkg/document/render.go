package document

import (
	"io"
	"strings"
)

// String serializes the node back to markup.
func (n *Node) String() string {
	var sb strings.Builder
	_ = n.Render(&sb)
	return sb.String()
}

// Render writes the markup of n to w.
//
// The output uses a minimal formatter: text escapes only &, < and >, so literal
// quotes and apostrophes survive and can be searched for verbatim. Attribute
// values are double-quoted unless they contain a double quote and no single
// quote. Void elements render as <br/>.
func (n *Node) Render(w io.Writer) error {
	if n == nil {
		return nil
	}
	sw, ok := w.(io.StringWriter)
	if !ok {
		sw = &stringWriter{w: w}
	}
	return n.render(sw)
}

type stringWriter struct {
	w io.Writer
}

func (s *stringWriter) WriteString(v string) (int, error) {
	return s.w.Write([]byte(v))
}

func (n *Node) render(w io.StringWriter) error {
	switch n.kind {
	case TextNode:
		_, err := w.WriteString(escaper.Replace(n.data))
		return err
	case CommentNode:
		_, err := w.WriteString("<!--" + n.data + "-->")
		return err
	case DoctypeNode:
		_, err := w.WriteString("<!DOCTYPE " + n.data + ">")
		return err
	case DocumentNode:
		return n.renderChildren(w)
	}

	if _, err := w.WriteString("<" + n.name); err != nil {
		return err
	}
	for _, a := range n.attrs {
		if _, err := w.WriteString(" " + a.Key + "=" + quoteAttr(a.Value.String())); err != nil {
			return err
		}
	}
	if voidElements[n.name] {
		_, err := w.WriteString("/>")
		return err
	}
	if _, err := w.WriteString(">"); err != nil {
		return err
	}
	if err := n.renderChildren(w); err != nil {
		return err
	}
	_, err := w.WriteString("</" + n.name + ">")
	return err
}

func (n *Node) renderChildren(w io.StringWriter) error {
	for _, c := range n.children {
		if rawText[n.name] && c.kind == TextNode {
			if _, err := w.WriteString(c.data); err != nil {
				return err
			}
			continue
		}
		if err := c.render(w); err != nil {
			return err
		}
	}
	return nil
}

// rawText elements keep their character data unescaped.
var rawText = map[string]bool{
	"script": true,
	"style":  true,
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func quoteAttr(v string) string {
	v = escaper.Replace(v)
	if strings.Contains(v, `"`) {
		if !strings.Contains(v, "'") {
			return "'" + v + "'"
		}
		v = strings.ReplaceAll(v, `"`, "&quot;")
	}
	return `"` + v + `"`
}
