package output_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuthanhdatt/baomoi/internal/output"
)

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := output.NewWriter(dir)

	path, err := w.Write("giá_vàng", "mô tả\nnội dung")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "giá_vàng.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mô tả\nnội dung", string(data))
}

func TestWriter_OverwritesAndLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := output.NewWriter(dir)

	_, err := w.Write("same", "first")
	require.NoError(t, err)
	path, err := w.Write("same", "second")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "same.txt", entries[0].Name())
}

func TestWriter_LongName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	name := strings.Repeat("a", 250)

	path, err := output.NewWriter(dir).Write(name, "x")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriter_MissingDir(t *testing.T) {
	t.Parallel()

	w := output.NewWriter(filepath.Join(t.TempDir(), "missing"))
	_, err := w.Write("a", "b")
	require.Error(t, err)
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "result", "the-gioi")
	require.NoError(t, output.EnsureDir(dir))
	require.NoError(t, output.EnsureDir(dir))
	assert.DirExists(t, dir)
}
