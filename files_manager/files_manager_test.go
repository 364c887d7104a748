package files_manager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestListHEICPaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.HEIC"))
	touch(t, filepath.Join(dir, "a.heic"))
	touch(t, filepath.Join(dir, "c.heif"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "._a.heic"))
	touch(t, filepath.Join(dir, "sub", "d.heic"))

	t.Run("flat", func(t *testing.T) {
		got, err := ListHEICPaths(dir, false)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.heic"),
			filepath.Join(dir, "b.HEIC"),
			filepath.Join(dir, "c.heif"),
		}, got)
	})

	t.Run("recursive", func(t *testing.T) {
		got, err := ListHEICPaths(dir, true)
		require.NoError(t, err)
		assert.Len(t, got, 4)
		assert.Contains(t, got, filepath.Join(dir, "sub", "d.heic"))
	})

	t.Run("not a directory", func(t *testing.T) {
		_, err := ListHEICPaths(filepath.Join(dir, "a.heic"), false)
		assert.Error(t, err)
	})
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "in", "x.heic"))
	loose := filepath.Join(dir, "loose.heic")

	got, err := ExpandInputs([]string{loose, filepath.Join(dir, "in")}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{loose, filepath.Join(dir, "in", "x.heic")}, got)
}

func TestCheckOutputDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	touch(t, file)

	assert.NoError(t, CheckOutputDir(dir))
	assert.Error(t, CheckOutputDir(""))
	assert.Error(t, CheckOutputDir(file))
	assert.Error(t, CheckOutputDir(filepath.Join(dir, "missing")))
}

func TestBrowserCommand(t *testing.T) {
	name, args := browserCommand("windows", `C:\out`)
	assert.Equal(t, "explorer", name)
	assert.Equal(t, []string{`C:\out`}, args)

	name, _ = browserCommand("darwin", "/out")
	assert.Equal(t, "open", name)

	name, _ = browserCommand("linux", "/out")
	assert.Equal(t, "xdg-open", name)
}
