package compiler

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
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
}

func TestDiscoverWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.yaml"))
	touch(t, filepath.Join(dir, "a.json"))
	touch(t, filepath.Join(dir, "nested", "c.YML"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, ".cache", "hidden.json"))
	touch(t, filepath.Join(dir, "testdata", "fixture.json"))

	docs, err := Discover([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "nested", "c.YML"),
	}, docs)
}

func TestDiscoverKeepsExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	touch(t, notes)
	touch(t, filepath.Join(dir, "a.json"))

	docs, err := Discover([]string{notes, dir, filepath.Join(dir, ".", "a.json")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), notes}, docs)
}

func TestDiscoverMissingPath(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "absent")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
