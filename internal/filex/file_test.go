package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureSubDir(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "download", "nested")

	got, err := EnsureSubDir(dir)
	require.NoError(t, err)
	require.Equal(t, dir, got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	again, err := EnsureSubDir(dir)
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestEnsureSubDir_FileInTheWay(t *testing.T) {
	base := t.TempDir()
	p := filepath.Join(base, "download")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))

	_, err := EnsureSubDir(p)
	require.Error(t, err)
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	p, err := UniquePath(dir, "Invoice_1.pdf")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Invoice_1.pdf"), p)

	require.NoError(t, os.WriteFile(p, nil, 0o600))
	p2, err := UniquePath(dir, "Invoice_1.pdf")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Invoice_1 (1).pdf"), p2)

	require.NoError(t, os.WriteFile(p2, nil, 0o600))
	p3, err := UniquePath(dir, "Invoice_1.pdf")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Invoice_1 (2).pdf"), p3)
}

func TestWritableDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WritableDir(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "temporary file must be removed")

	require.Error(t, WritableDir(filepath.Join(dir, "missing")))

	f := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(f, nil, 0o600))
	require.Error(t, WritableDir(f))
}
