package checks_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/markcheck/pkg/checks"
	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
  <head>
    <title>%s</title>
  </head>
  <body %s>
    %s
  </body>
</html>`

func doc(title, bodyAttrs, body string) string {
	return fmt.Sprintf(page, title, bodyAttrs, body)
}

func root(t *testing.T, student, solution string) *domain.State {
	t.Helper()
	s, err := domain.NewState(student, solution)
	require.NoError(t, err)
	return s
}

func failureMessage(t *testing.T, err error) string {
	t.Helper()
	var f *domain.Failure
	require.ErrorAs(t, err, &f)
	return f.Message()
}

func TestCheckBody_AttrMismatch(t *testing.T) {
	s := root(t,
		doc("t", `class="hello"`, ""),
		doc("t", `class="example"`, ""),
	)

	c := checks.Ex(s).CheckBody().HasEqualAttr()

	assert.Equal(t, domain.OutcomeFailure, c.Outcome())
	assert.Equal(t,
		"Inspect the `<body>` tag. Expected attribute `class` to be `\"example\"`, but found `\"hello\"`.",
		failureMessage(t, c.Err()))
}

func TestBreadcrumb(t *testing.T) {
	s := root(t,
		doc("412-52-2524", "", "<div><p>one</p></div>"),
		doc("412-52-2222", "", "<div><p>two</p></div>"),
	)

	head := checks.Ex(s).CheckHTML().CheckHead().CheckTag("title").HasEqualText(checks.WithShowText(true))
	assert.Equal(t,
		"Check the `title` tag with in `html > head`. Expected text `412-52-2222` but found `412-52-2524`.",
		failureMessage(t, head.Err()))

	p := checks.Ex(s).CheckBody().CheckTag("div").CheckTag("p").HasEqualText()
	assert.Equal(t,
		"Check the `p` tag with in `body > div`. Expected text not found.",
		failureMessage(t, p.Err()))
}

func TestStructuralChecks_MissingInSubmission(t *testing.T) {
	tests := []struct {
		name     string
		student  string
		solution string
		run      func(checks.Chain) checks.Chain
		want     string
	}{
		{
			name:     "doctype",
			student:  "<html><body></body></html>",
			solution: "<!DOCTYPE html><html><body></body></html>",
			run:      func(c checks.Chain) checks.Chain { return c.CheckDoctype() },
			want:     "Are you sure you defined `<!DOCTYPE>`?",
		},
		{
			name:     "body discards context",
			student:  "<html><head></head></html>",
			solution: "<html><head></head><body></body></html>",
			run:      func(c checks.Chain) checks.Chain { return c.CheckHTML().CheckBody() },
			want:     "Are you sure you included `<body>` tag?",
		},
		{
			name:     "head",
			student:  "<html></html>",
			solution: "<html><head></head></html>",
			run:      func(c checks.Chain) checks.Chain { return c.CheckHead() },
			want:     "Are you sure you included `<head>` tag?",
		},
		{
			name:     "single child has no ordinal",
			student:  "<body></body>",
			solution: "<body><p>a</p></body>",
			run:      func(c checks.Chain) checks.Chain { return c.CheckBody().CheckTag("p") },
			want:     "Inspect the `<body>` tag. Did you include the `p` tag properly?",
		},
		{
			name:     "repeated child has ordinal",
			student:  "<body><p>a</p></body>",
			solution: "<body><p>a</p><p>b</p></body>",
			run:      func(c checks.Chain) checks.Chain { return c.CheckBody().CheckTag("p", checks.WithIndex(1)) },
			want:     "Inspect the `<body>` tag. Did you include the 2nd `p` tag properly?",
		},
		{
			name:     "append disabled",
			student:  "<body></body>",
			solution: "<body><p>a</p></body>",
			run: func(c checks.Chain) checks.Chain {
				return c.CheckBody().CheckTag("p", checks.WithAppend(false))
			},
			want: "Did you include the `p` tag properly?",
		},
		{
			name:     "custom message",
			student:  "<html></html>",
			solution: "<html><body></body></html>",
			run: func(c checks.Chain) checks.Chain {
				return c.CheckBody(checks.WithMissingMsg("No {{tag}} for {{who}}!"), checks.WithValue("who", "you"))
			},
			want: "No body for you!",
		},
		{
			name:     "user values never override reserved ones",
			student:  "<html></html>",
			solution: "<html><body></body></html>",
			run: func(c checks.Chain) checks.Chain {
				return c.CheckBody(checks.WithValue("tag", "table"))
			},
			want: "Are you sure you included `<body>` tag?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.run(checks.Ex(root(t, tt.student, tt.solution)))
			assert.Equal(t, tt.want, failureMessage(t, c.Err()))
		})
	}
}

func TestStructuralChecks_ReturnNarrowedStateOnFailure(t *testing.T) {
	s := root(t, "<body></body>", "<body><p>a</p></body>")
	body, err := checks.CheckBody(s)
	require.NoError(t, err)

	child, err := checks.CheckTag(body, "p")
	require.Error(t, err)
	require.NotNil(t, child)
	assert.Nil(t, child.Student())
	assert.Equal(t, "p", child.Solution().Name())
	assert.Len(t, child.Path(), 2)
}

func TestStructuralChecks_MissingInReference(t *testing.T) {
	tests := []struct {
		name     string
		solution string
		run      func(checks.Chain) checks.Chain
		want     string
	}{
		{
			name:     "doctype",
			solution: "<html></html>",
			run:      func(c checks.Chain) checks.Chain { return c.CheckDoctype() },
			want:     "`check_doctype()` couldn't find `<!DOCTYPE>` tag in solution.",
		},
		{
			name:     "html",
			solution: "<p>x</p>",
			run:      func(c checks.Chain) checks.Chain { return c.CheckHTML() },
			want:     "`check_html()` couldn't find `<html>` tag in solution",
		},
		{
			name:     "head",
			solution: "<html><body></body></html>",
			run:      func(c checks.Chain) checks.Chain { return c.CheckHTML().CheckHead() },
			want:     "`check_head()` couldn't find `<head>` tag in `<html>`",
		},
		{
			name:     "tag index",
			solution: "<body><p>a</p></body>",
			run: func(c checks.Chain) checks.Chain {
				return c.CheckBody().CheckTag("p", checks.WithIndex(1))
			},
			want: "`check_tag()` couldn't find `<p>` tag in `<body>` at index 1",
		},
		{
			name:     "attribute",
			solution: "<body class=\"x\"></body>",
			run: func(c checks.Chain) checks.Chain {
				return c.CheckBody().HasEqualAttr(checks.WithAttrs("id"))
			},
			want: "`has_equal_attr()` couldn't find attribute `id` in `<body>`.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the submission matches the reference so only the reference can be at fault
			c := tt.run(checks.Ex(root(t, tt.solution, tt.solution)))

			require.Error(t, c.Err())
			assert.Equal(t, domain.OutcomeAuthoringError, c.Outcome())
			assert.False(t, domain.IsFailure(c.Err()))
			assert.True(t, domain.IsInstructorError(c.Err()))
			assert.Equal(t, tt.want, c.Err().Error())
		})
	}
}

func TestArgumentErrors_BeforeInspection(t *testing.T) {
	// neither document has a body; argument errors still win
	s := root(t, "<p></p>", "<p></p>")

	_, err := checks.CheckTag(s, "  ")
	assert.True(t, domain.IsArgumentError(err))

	_, err = checks.CheckTag(s, "p", checks.WithIndex(-1))
	assert.True(t, domain.IsArgumentError(err))

	_, err = checks.HasCode(s, "(", checks.WithFixed(false))
	assert.True(t, domain.IsArgumentError(err))

	_, err = checks.HasCode(s, "")
	assert.True(t, domain.IsArgumentError(err))

	_, err = checks.HasEqualAttr(s, checks.WithAttrs(""))
	assert.True(t, domain.IsArgumentError(err))

	assert.Equal(t, domain.OutcomeAuthoringError, domain.Classify(err))
}

func TestCheckTag_DirectChildrenOnly(t *testing.T) {
	solution := "<body><div><div>inner</div></div><div>second</div></body>"
	s := root(t, solution, solution)

	c := checks.Ex(s).CheckBody().CheckTag("div", checks.WithIndex(1))
	require.NoError(t, c.Err())
	assert.Equal(t, "second", c.State().Solution().Text())

	c = checks.Ex(s).CheckBody().CheckTag("DIV", checks.WithIndex(2))
	assert.True(t, domain.IsInstructorError(c.Err()))
}

func TestCheckTag_OrdinalsInMessages(t *testing.T) {
	items := func(n int) string {
		var sb strings.Builder
		sb.WriteString("<ul>")
		for i := range n {
			fmt.Fprintf(&sb, "<li>%d</li>", i)
		}
		sb.WriteString("</ul>")
		return sb.String()
	}
	s := root(t, items(1), items(21))

	c := checks.Ex(s).CheckTag("ul").CheckTag("li").HasEqualText()
	require.NoError(t, c.Err())

	tests := []struct {
		index int
		want  string
	}{
		{1, "Check the `ul` tag. Did you include the 2nd `li` tag properly?"},
		{10, "Check the `ul` tag. Did you include the 11th `li` tag properly?"},
		{20, "Check the `ul` tag. Did you include the 21st `li` tag properly?"},
	}
	for _, tt := range tests {
		c := checks.Ex(s).CheckTag("ul").CheckTag("li", checks.WithIndex(tt.index))
		assert.Equal(t, tt.want, failureMessage(t, c.Err()))
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 10: "10th",
		11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd",
		23: "23rd", 101: "101st", 111: "111th", 112: "112th",
	}
	for n, want := range tests {
		assert.Equal(t, want, checks.Ordinal(n), "n=%d", n)
	}
}

func TestHasCode(t *testing.T) {
	student := doc("412-52-2524", "", `<p class="a">it's "quoted" & fine</p>`)
	s := root(t, student, doc("x", "", ""))

	t.Run("pattern found", func(t *testing.T) {
		next, err := checks.HasCode(s, `\d{3}-\d{2}-\d{4}`, checks.WithFixed(false))
		require.NoError(t, err)
		assert.Same(t, s, next)
	})

	t.Run("pattern absent", func(t *testing.T) {
		_, err := checks.HasCode(s, `\d{3}-\d{3}`, checks.WithFixed(false))
		assert.Equal(t, "Didn't find the pattern `\\d{3}-\\d{3}` in your code.", failureMessage(t, err))
	})

	t.Run("literal found with quotes", func(t *testing.T) {
		_, err := checks.HasCode(s, `it's "quoted"`)
		assert.NoError(t, err)
	})

	t.Run("literal absent", func(t *testing.T) {
		_, err := checks.HasCode(s, "<table>")
		assert.Equal(t, "Didn't find `<table>` in your code.", failureMessage(t, err))
	})

	t.Run("ignores scope", func(t *testing.T) {
		c := checks.Ex(s).CheckHead().HasCode("<body>")
		assert.NoError(t, c.Err())
	})

	t.Run("keeps context", func(t *testing.T) {
		c := checks.Ex(s).CheckHead().HasCode("<table>")
		assert.Equal(t, "Inspect the `<head>` tag. Didn't find `<table>` in your code.", failureMessage(t, c.Err()))
	})
}

func TestHasEqualAttr(t *testing.T) {
	tests := []struct {
		name     string
		student  string
		solution string
		opts     []checks.Option
		want     string
	}{
		{
			name:     "list attributes compare as sets",
			student:  `<p class="b a">x</p>`,
			solution: `<p class="a b">x</p>`,
		},
		{
			name:     "scalar attributes compare exactly",
			student:  `<a href="X">x</a>`,
			solution: `<a href="x">x</a>`,
			want:     "Check the `a` tag with in `body`. Expected attribute `href` to be `\"x\"`, but found `\"X\"`.",
		},
		{
			name:     "different sets",
			student:  `<p class="a c">x</p>`,
			solution: `<p class="a b">x</p>`,
			want:     "Check the `p` tag with in `body`. Expected attribute `class` to be `\"a b\"`, but found `\"a c\"`.",
		},
		{
			name:     "missing attribute",
			student:  `<img src="a.png">`,
			solution: `<img src="a.png" alt="A">`,
			want:     "Check the `img` tag with in `body`. Expected attribute `alt` not found.",
		},
		{
			name:     "values ignored",
			student:  `<img src="b.png" alt="B">`,
			solution: `<img src="a.png" alt="A">`,
			opts:     []checks.Option{checks.WithCheckValues(false)},
		},
		{
			name:     "restricted to attrs",
			student:  `<img src="a.png" alt="B">`,
			solution: `<img src="a.png" alt="A">`,
			opts:     []checks.Option{checks.WithAttrs("src")},
		},
		{
			name:     "extra attributes in submission are fine",
			student:  `<img src="a.png" width="3">`,
			solution: `<img src="a.png">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := root(t, "<body>"+tt.student+"</body>", "<body>"+tt.solution+"</body>")
			tag := s.SolutionRoot().Body().Children()[0].Name()

			c := checks.Ex(s).CheckBody().CheckTag(tag).HasEqualAttr(tt.opts...)
			if tt.want == "" {
				assert.NoError(t, c.Err())
				return
			}
			assert.Equal(t, tt.want, failureMessage(t, c.Err()))
		})
	}
}

func TestChain_Branching(t *testing.T) {
	s := root(t,
		doc("t", `class="a"`, "<h1>Hi</h1>"),
		doc("t", `class="a"`, "<h1>Hello</h1>"),
	)

	body := checks.Ex(s).CheckBody()
	heading := body.CheckTag("h1").HasEqualText()
	attrs := body.HasEqualAttr()

	assert.Error(t, heading.Err())
	assert.NoError(t, attrs.Err())
	assert.NoError(t, body.Err())
	assert.Equal(t, "body", attrs.State().Solution().Name())

	stopped := heading.CheckHead()
	assert.Same(t, heading.State(), stopped.State(), "a stopped chain ignores further checks")
	assert.Equal(t, heading.Err(), stopped.Err())
}

func TestIdempotence(t *testing.T) {
	student := doc("a", `class="x y"`, "<p>one</p><p>two</p>")
	solution := doc("b", `class="y z"`, "<p>one</p><p>three</p>")

	run := func() string {
		c := checks.Ex(root(t, student, solution)).CheckBody().CheckTag("p", checks.WithIndex(1)).HasEqualText(checks.WithShowText(true))
		return failureMessage(t, c.Err())
	}
	first := run()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run())
	}
}

// TestScenarios pins the exact explanations of a few complete documents.
// Regenerate with: go test ./pkg/checks -update
func TestScenarios(t *testing.T) {
	solution := `<!DOCTYPE html>
<html>
  <head>
    <title>Portfolio</title>
  </head>
  <body class="main dark" width="40px">
    <h1>Jane Doe</h1>
    <ul>
      <li>Go</li>
      <li>HTML</li>
    </ul>
  </body>
</html>`

	tests := []struct {
		name    string
		student string
		run     func(checks.Chain) checks.Chain
	}{
		{
			name:    "missing_list_item",
			student: `<html><body class="dark main" width="40px"><h1>Jane Doe</h1><ul><li>Go</li></ul></body></html>`,
			run: func(c checks.Chain) checks.Chain {
				return c.CheckHTML().CheckBody().CheckTag("ul").CheckTag("li", checks.WithIndex(1))
			},
		},
		{
			name:    "wrong_heading",
			student: `<html><body class="dark main" width="40px"><h1>John</h1></body></html>`,
			run: func(c checks.Chain) checks.Chain {
				return c.CheckBody().CheckTag("h1").HasEqualText(checks.WithShowText(true))
			},
		},
		{
			name:    "body_width",
			student: `<html><body class="dark main" width="50px"></body></html>`,
			run: func(c checks.Chain) checks.Chain {
				return c.CheckBody().HasEqualAttr()
			},
		},
		{
			name:    "complete",
			student: solution,
			run: func(c checks.Chain) checks.Chain {
				return c.CheckBody().HasEqualAttr().CheckTag("ul").CheckTag("li", checks.WithIndex(1)).HasEqualText()
			},
		},
		{
			name:    "missing_doctype",
			student: `<html><body class="main dark" width="40px"></body></html>`,
			run: func(c checks.Chain) checks.Chain {
				return c.CheckDoctype()
			},
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.run(checks.Ex(root(t, tt.student, solution)))

			msg := ""
			if c.Err() != nil {
				msg = c.Err().Error()
			}
			g.Assert(t, tt.name, []byte(fmt.Sprintf("outcome: %s\nmessage: %s\n", c.Outcome(), msg)))
		})
	}
}
