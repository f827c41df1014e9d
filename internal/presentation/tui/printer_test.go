package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/markcheck/pkg/feedback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, 0)

	require.NoError(t, p.Print("alice.html", feedback.Result{Correct: true, Message: "Great work!"}))
	require.NoError(t, p.Print("bob.html", feedback.Result{Correct: false, Message: "Inspect the `&lt;body&gt;` tag."}))

	assert.Equal(t, "PASS alice.html\nFAIL bob.html\n  Inspect the `<body>` tag.\n", buf.String())
}

func TestPrinter_Unnamed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false, 0).Print("", feedback.Result{Correct: true}))
	assert.Equal(t, "PASS\n", buf.String())
}

func TestExplanation(t *testing.T) {
	res := feedback.NewReporter().Failed("Expected attribute `class` to be `\"a\"`, but found `\"b\"`.")
	assert.Equal(t, "Expected attribute `class` to be `\"a\"`, but found `\"b\"`.", Explanation(res))
}
