package document_test

import (
	"testing"

	"github.com/aretw0/markcheck/pkg/document"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html lang="en">
  <head>
    <title>12-52-2524</title>
  </head>
  <body width="40px" class="example main">
    <div><div>inner</div></div>
    <div id="second">Second</div>
  </body>
</html>`

func mustParse(t *testing.T, raw string) *document.Node {
	t.Helper()
	root, err := document.Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, root)
	return root
}

func TestParse_Shortcuts(t *testing.T) {
	root := mustParse(t, page)

	assert.Equal(t, document.DocumentNode, root.Kind())
	assert.Equal(t, document.RootName, root.Name())

	doctype := root.Doctype()
	require.NotNil(t, doctype)
	assert.Equal(t, "html", doctype.Data())

	require.NotNil(t, root.HTML())
	assert.Equal(t, "head", root.Head().Name())
	assert.Equal(t, "body", root.Body().Name())
	assert.Equal(t, "title", root.Head().FindDirectChildren("title")[0].Name())
}

func TestParse_DoesNotInferStructure(t *testing.T) {
	root := mustParse(t, "<p>hello</p>")

	assert.Nil(t, root.HTML())
	assert.Nil(t, root.Head())
	assert.Nil(t, root.Body())
	assert.Nil(t, root.Doctype())
	assert.Len(t, root.FindDirectChildren("p"), 1)
}

func TestParse_Empty(t *testing.T) {
	root := mustParse(t, "")

	assert.Nil(t, root.FirstChild())
	assert.Nil(t, root.Doctype())
	assert.Equal(t, "", root.Text())
}

func TestFindDirectChildren_NonRecursive(t *testing.T) {
	body := mustParse(t, page).Body()

	divs := body.FindDirectChildren("div")
	require.Len(t, divs, 2)
	v, ok := divs[1].Attr("id")
	require.True(t, ok)
	assert.Equal(t, "second", v.String())

	assert.Len(t, body.FindDirectChildren("DIV"), 2, "name matching is case-insensitive")
	assert.Empty(t, body.FindDirectChildren("span"))
}

func TestAttributes(t *testing.T) {
	body := mustParse(t, page).Body()

	if diff := cmp.Diff([]string{"width", "class"}, body.AttrKeys()); diff != "" {
		t.Errorf("AttrKeys() mismatch (-want +got):\n%s", diff)
	}

	width, ok := body.Attr("width")
	require.True(t, ok)
	assert.False(t, width.IsList())
	assert.Equal(t, "40px", width.String())

	class, ok := body.Attr("CLASS")
	require.True(t, ok)
	assert.True(t, class.IsList())
	assert.Equal(t, []string{"example", "main"}, class.Values())
	assert.Equal(t, "example main", class.String())

	_, ok = body.Attr("missing")
	assert.False(t, ok)
}

func TestAttributes_DuplicateKeepsLast(t *testing.T) {
	a := mustParse(t, `<a href="1" HREF="2">x</a>`).FindDirectChildren("a")[0]

	v, ok := a.Attr("href")
	require.True(t, ok)
	assert.Equal(t, "2", v.String())
	assert.Len(t, a.Attrs(), 1)
}

func TestAttrValue_Comparison(t *testing.T) {
	ab := document.List("a", "b")
	ba := document.List("b", "a")

	assert.False(t, ab.Equal(ba))
	assert.True(t, ab.SameSet(ba))
	assert.True(t, ab.Equal(document.List("a", "b")))

	assert.False(t, document.Scalar("Hello").Equal(document.Scalar("hello")))
	assert.True(t, document.Scalar("x").Equal(document.Scalar("x")))
	assert.False(t, document.Scalar("a b").Equal(document.List("a", "b")))
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"nested", "<body>Hello<p>this is paragraph</p>World</body>", "Hello this is paragraph World"},
		{"whitespace", "<p>\n   spaced   out \n</p>", "spaced   out"},
		{"entities", "<p>a &amp; b</p>", "a & b"},
		{"skips script", "<div>a<script>var x = 1;</script> b </div>", "a b"},
		{"skips comments", "<div>a<!-- hidden -->b</div>", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParse(t, tt.raw)
			assert.Equal(t, tt.want, root.FirstChild().Text())
		})
	}
}

func TestText_ScriptItself(t *testing.T) {
	script := mustParse(t, "<script>var x = 1;</script>").FirstChild()
	assert.Equal(t, "var x = 1;", script.Text())
}

func TestParse_TolerantNesting(t *testing.T) {
	root := mustParse(t, "<div></span><p>a</div>b")

	divs := root.FindDirectChildren("div")
	require.Len(t, divs, 1)
	assert.Len(t, divs[0].FindDirectChildren("p"), 1)
	assert.Equal(t, "a b", root.Text())

	void := mustParse(t, "<p>line<br>next</p>").FirstChild()
	assert.Len(t, void.FindDirectChildren("br"), 1)
	assert.Equal(t, "line next", void.Text())
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"void and escapes", `<p class="x  y">don't &amp; <br>go</p>`, `<p class="x y">don't &amp; <br/>go</p>`},
		{"doctype and comment", "<!DOCTYPE html><!-- c --><b>x</b>", "<!DOCTYPE html><!-- c --><b>x</b>"},
		{"quoted attribute", `<a title='say "hi"'>x</a>`, `<a title='say "hi"'>x</a>`},
		{"raw script", "<script>if (a < b) {}</script>", "<script>if (a < b) {}</script>"},
		{"self closing", "<div/><span>x</span>", "<div></div><span>x</span>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustParse(t, tt.raw).String())
		})
	}
}

func TestNilNodeIsSafe(t *testing.T) {
	var n *document.Node

	assert.Nil(t, n.Find("html"))
	assert.Nil(t, n.FindDirectChildren("div"))
	assert.Nil(t, n.Children())
	assert.Equal(t, "", n.Text())
	assert.Equal(t, "", n.String())
	assert.False(t, n.IsElement())
	_, ok := n.Attr("class")
	assert.False(t, ok)
}
