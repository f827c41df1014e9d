package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/markcheck"
	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	checkScript = "- [check_body, {check_tag: h1}, has_equal_text]\n"
	checkRef    = "<html><body><h1>Jane Doe</h1></body></html>"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestRunCheck_ScriptAndSolution(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"checks.yaml":   checkScript,
		"solution.html": checkRef,
		"alice.html":    "<html><body><h1>Jane Doe</h1></body></html>",
		"bob.html":      "<html><body><h1>John</h1></body></html>",
	})
	opts := CheckOptions{
		ScriptPath:   filepath.Join(dir, "checks.yaml"),
		SolutionPath: filepath.Join(dir, "solution.html"),
	}

	t.Run("single correct submission", func(t *testing.T) {
		var out bytes.Buffer
		o := opts
		o.Submissions = []string{filepath.Join(dir, "alice.html")}
		require.NoError(t, RunCheck(context.Background(), markcheck.New(), o, nil, &out))
		assert.Equal(t, "PASS\n", out.String())
	})

	t.Run("batch with a failure", func(t *testing.T) {
		var out bytes.Buffer
		o := opts
		o.Submissions = []string{filepath.Join(dir, "alice.html"), filepath.Join(dir, "bob.html")}
		o.Concurrency = 1
		err := RunCheck(context.Background(), markcheck.New(), o, nil, &out)
		assert.ErrorIs(t, err, ErrIncorrect)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "PASS "))
		assert.True(t, strings.HasPrefix(lines[1], "FAIL "))
		assert.Equal(t, "  Check the `h1` tag with in `body`. Expected text not found.", lines[2])
	})

	t.Run("stdin as json", func(t *testing.T) {
		var out bytes.Buffer
		o := opts
		o.Submissions = []string{"-"}
		o.Output = OutputJSON
		err := RunCheck(context.Background(), markcheck.New(), o, strings.NewReader("<html><body><h1>John</h1></body></html>"), &out)
		assert.ErrorIs(t, err, ErrIncorrect)

		var reports []Report
		require.NoError(t, json.Unmarshal(out.Bytes(), &reports))
		require.Len(t, reports, 1)
		assert.Equal(t, "-", reports[0].Submission)
		assert.False(t, reports[0].Correct)
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		o := opts
		o.Submissions = []string{filepath.Join(dir, "alice.html")}
		o.Output = OutputYAML
		require.NoError(t, RunCheck(context.Background(), markcheck.New(), o, nil, &out))

		var reports []map[string]any
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &reports))
		require.Len(t, reports, 1)
		assert.Equal(t, true, reports[0]["correct"])
		assert.Equal(t, "Great work!", reports[0]["message"])
	})
}

func TestRunCheck_Exercise(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"portfolio.yaml": "solution: \"" + checkRef + "\"\nchecks:\n  - [check_body, {check_tag: h1}, has_equal_text]\n",
		"alice.html":     "<html><body><h1>Jane Doe</h1></body></html>",
	})

	opts := CheckOptions{
		Exercise:     "portfolio",
		ExercisesDir: dir,
		Submissions:  []string{filepath.Join(dir, "alice.html")},
	}
	var out bytes.Buffer
	require.NoError(t, RunCheck(context.Background(), markcheck.New(), opts, nil, &out))
	assert.Equal(t, "PASS\n", out.String())

	opts.Exercise = "resume"
	err := RunCheck(context.Background(), markcheck.New(), opts, nil, &out)
	assert.ErrorIs(t, err, domain.ErrExerciseNotFound)
}

func TestRunCheck_Errors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"checks.yaml":   "- [check_doctype]\n",
		"solution.html": "<p></p>",
		"alice.html":    "<p></p>",
	})
	base := CheckOptions{
		ScriptPath:   filepath.Join(dir, "checks.yaml"),
		SolutionPath: filepath.Join(dir, "solution.html"),
		Submissions:  []string{filepath.Join(dir, "alice.html")},
	}

	tests := map[string]func(o *CheckOptions){
		"defective reference": func(o *CheckOptions) {},
		"no submission":       func(o *CheckOptions) { o.Submissions = nil },
		"missing submission":  func(o *CheckOptions) { o.Submissions = []string{filepath.Join(dir, "nope.html")} },
		"no solution":         func(o *CheckOptions) { o.SolutionPath = "" },
		"exercise and script": func(o *CheckOptions) { o.Exercise = "portfolio" },
		"unknown output":      func(o *CheckOptions) { o.Output = "xml" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			o := base
			mutate(&o)
			var out bytes.Buffer
			err := RunCheck(context.Background(), markcheck.New(), o, nil, &out)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrIncorrect)
			assert.Empty(t, out.String())
		})
	}
}
