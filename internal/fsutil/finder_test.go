package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "b.hcl", "a.hcl", "nested/c.HCL", "notes.txt", "d.yaml")

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested/c.HCL"),
	}, files)

	files, err = FindFilesByExtension(root, ".yaml", ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "d.yaml")}, files)
}

func TestFindFilesByExtension_PanicsWithoutExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir()) })
}

func TestResolvePaths(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "models/a.hcl", "models/b.hcl", "single.hcl", "other.txt")

	t.Run("files and directories are merged without duplicates", func(t *testing.T) {
		files, err := ResolvePaths([]string{
			filepath.Join(root, "single.hcl"),
			filepath.Join(root, "models"),
			filepath.Join(root, "models", "a.hcl"),
		}, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "single.hcl"),
			filepath.Join(root, "models", "a.hcl"),
			filepath.Join(root, "models", "b.hcl"),
		}, files)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := ResolvePaths([]string{filepath.Join(root, "nope.hcl")}, ".hcl")
		assert.ErrorContains(t, err, "error accessing path")
	})

	t.Run("wrong extension", func(t *testing.T) {
		_, err := ResolvePaths([]string{filepath.Join(root, "other.txt")}, ".hcl")
		assert.ErrorContains(t, err, "supported extension")
	})
}
