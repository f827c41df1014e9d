package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/markcheck/pkg/adapters/file"
	"github.com/aretw0/markcheck/pkg/domain"
	contract "github.com/aretw0/markcheck/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFileLoader_Contract(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "intro.yaml", "solution: <p>Hello</p>\nchecks: [[has_equal_text]]\n")
	write(t, dir, "list.json", `{"solution": "<ul></ul>", "checks": [[{"check_tag": "ul"}]]}`)
	write(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	contract.ExerciseLoaderContractTest(t, file.NewLoader(dir), map[string]string{
		"intro": "<p>Hello</p>",
		"list":  "<ul></ul>",
	})
}

func TestFileLoader_IDFromFileName(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "page.yml", "id: something-else\nsolution: <p></p>\n")

	ex, err := file.NewLoader(dir).GetExercise(context.Background(), "page")
	require.NoError(t, err)
	assert.Equal(t, "page", ex.ID)
}

func TestFileLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "broken.yaml", "title: no solution\n")
	loader := file.NewLoader(dir)
	ctx := context.Background()

	_, err := loader.GetExercise(ctx, "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrExerciseNotFound)

	_, err = loader.GetExercise(ctx, "../broken")
	assert.ErrorIs(t, err, domain.ErrExerciseNotFound)

	ids, err := file.NewLoader(filepath.Join(dir, "missing")).ListExercises(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
