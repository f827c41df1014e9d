package document

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseError is returned when the tokenizer cannot make progress on the input.
// Malformed but recoverable markup never produces a ParseError.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse markup: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// voidElements never contain children and never open a scope.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"menuitem": true, "meta": true, "param": true, "source": true, "track": true,
	"wbr": true, "basefont": true, "bgsound": true, "command": true, "frame": true,
	"image": true, "isindex": true, "nextid": true, "spacer": true,
}

// Parse reads raw markup into a tree rooted at a DocumentNode.
func Parse(raw string) (*Node, error) {
	return ParseReader(strings.NewReader(raw))
}

// ParseReader is Parse for an io.Reader.
func ParseReader(r io.Reader) (*Node, error) {
	root := &Node{kind: DocumentNode}
	b := &builder{stack: []*Node{root}}

	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, &ParseError{Err: err}
			}
			return root, nil
		}
		b.add(tt, z.Token())
	}
}

type builder struct {
	stack []*Node
}

func (b *builder) top() *Node {
	return b.stack[len(b.stack)-1]
}

func (b *builder) add(tt html.TokenType, tok html.Token) {
	switch tt {
	case html.TextToken:
		b.text(tok.Data)
	case html.StartTagToken:
		el := newElement(tok)
		b.append(el)
		if !voidElements[el.name] {
			b.stack = append(b.stack, el)
		}
	case html.SelfClosingTagToken:
		b.append(newElement(tok))
	case html.EndTagToken:
		b.close(strings.ToLower(tok.Data))
	case html.CommentToken:
		b.append(&Node{kind: CommentNode, data: tok.Data})
	case html.DoctypeToken:
		b.append(&Node{kind: DoctypeNode, data: tok.Data})
	}
}

func (b *builder) append(n *Node) {
	parent := b.top()
	parent.children = append(parent.children, n)
}

// text merges adjacent character data into a single node.
func (b *builder) text(data string) {
	if data == "" {
		return
	}
	parent := b.top()
	if last := len(parent.children) - 1; last >= 0 && parent.children[last].kind == TextNode {
		parent.children[last].data += data
		return
	}
	b.append(&Node{kind: TextNode, data: data})
}

// close pops the most recently opened element with the given name together
// with everything opened inside it. Stray end tags are ignored.
func (b *builder) close(name string) {
	for i := len(b.stack) - 1; i > 0; i-- {
		if b.stack[i].name == name {
			b.stack = b.stack[:i]
			return
		}
	}
}

func newElement(tok html.Token) *Node {
	name := strings.ToLower(tok.Data)
	el := &Node{kind: ElementNode, name: name}
	for _, a := range tok.Attr {
		key := strings.ToLower(a.Key)
		if a.Namespace != "" {
			key = a.Namespace + ":" + key
		}
		val := newAttrValue(name, key, a.Val)
		replaced := false
		for i := range el.attrs {
			if el.attrs[i].Key == key {
				el.attrs[i].Value = val
				replaced = true
				break
			}
		}
		if !replaced {
			el.attrs = append(el.attrs, Attr{Key: key, Value: val})
		}
	}
	return el
}
