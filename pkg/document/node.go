package document

import (
	"strings"
)

// Kind identifies the type of a Node.
type Kind int

const (
	DocumentNode Kind = iota
	ElementNode
	TextNode
	DoctypeNode
	CommentNode
)

// RootName is the name reported by the synthetic document root.
const RootName = "[document]"

func (k Kind) String() string {
	switch k {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case DoctypeNode:
		return "doctype"
	case CommentNode:
		return "comment"
	default:
		return "unknown"
	}
}

// Attr is a single attribute of an element, in source order.
type Attr struct {
	Key   string
	Value AttrValue
}

// Node is a node of a parsed document.
//
// All accessors are safe to call on a nil *Node; they behave as if the node had
// no children, no attributes and no text. This lets checks inspect a scope that
// is missing from the submission without special-casing every lookup.
type Node struct {
	kind     Kind
	name     string
	data     string
	attrs    []Attr
	children []*Node
}

// Kind returns the node kind.
func (n *Node) Kind() Kind {
	if n == nil {
		return DocumentNode
	}
	return n.kind
}

// IsElement reports whether n is a non-nil element.
func (n *Node) IsElement() bool {
	return n != nil && n.kind == ElementNode
}

// IsDoctype reports whether n is a non-nil doctype declaration.
func (n *Node) IsDoctype() bool {
	return n != nil && n.kind == DoctypeNode
}

// Name returns the lower-cased tag name of an element, RootName for the
// document root and an empty string for every other kind.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	switch n.kind {
	case ElementNode:
		return n.name
	case DocumentNode:
		return RootName
	default:
		return ""
	}
}

// Data returns the raw content of text, comment and doctype nodes.
func (n *Node) Data() string {
	if n == nil {
		return ""
	}
	return n.data
}

// Children returns the ordered children of the node.
func (n *Node) Children() []*Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// FirstChild returns the first child of any kind, or nil.
func (n *Node) FirstChild() *Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// Attrs returns the attributes of an element in source order.
func (n *Node) Attrs() []Attr {
	if n == nil || len(n.attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// AttrKeys returns the attribute names of an element in source order.
func (n *Node) AttrKeys() []string {
	if n == nil {
		return nil
	}
	keys := make([]string, 0, len(n.attrs))
	for _, a := range n.attrs {
		keys = append(keys, a.Key)
	}
	return keys
}

// Attr looks up an attribute by name. Attribute names are stored lower-cased.
func (n *Node) Attr(key string) (AttrValue, bool) {
	if n == nil {
		return AttrValue{}, false
	}
	key = strings.ToLower(key)
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return AttrValue{}, false
}

// FindDirectChildren returns the element children of n whose name matches,
// case-insensitively, in document order. It never descends further than one
// level: checks rely on indexes among same-named siblings only.
func (n *Node) FindDirectChildren(name string) []*Node {
	if n == nil {
		return nil
	}
	name = strings.ToLower(name)
	var out []*Node
	for _, c := range n.children {
		if c.kind == ElementNode && c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first descendant element with the given name in document
// order, or nil. The node itself is not considered.
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	name = strings.ToLower(name)
	for _, c := range n.children {
		if c.kind == ElementNode && c.name == name {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Doctype returns the leading doctype declaration of n, or nil when the first
// child is anything else.
func (n *Node) Doctype() *Node {
	if first := n.FirstChild(); first.IsDoctype() {
		return first
	}
	return nil
}

// HTML returns the first <html> element below n.
func (n *Node) HTML() *Node { return n.Find("html") }

// Head returns the first <head> element below n.
func (n *Node) Head() *Node { return n.Find("head") }

// Body returns the first <body> element below n.
func (n *Node) Body() *Node { return n.Find("body") }

// Text returns the text content of n: every descendant string is stripped of
// surrounding whitespace, empty strings are dropped and the rest are joined
// with a single space. Comments and doctypes never contribute, and neither does
// the content of nested script, style or template elements.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	var parts []string
	n.collectText(&parts, true)
	return strings.Join(parts, " ")
}

func (n *Node) collectText(parts *[]string, top bool) {
	switch n.kind {
	case TextNode:
		if s := strings.TrimSpace(n.data); s != "" {
			*parts = append(*parts, s)
		}
		return
	case CommentNode, DoctypeNode:
		return
	case ElementNode:
		if !top && opaqueText[n.name] {
			return
		}
	}
	for _, c := range n.children {
		c.collectText(parts, false)
	}
}

// opaqueText lists elements whose character data is not document text.
var opaqueText = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
}
