package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/fimwatch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fsys types.FS, root string) {
	t.Helper()

	dir := filepath.Join(root, "sub", "dir")
	require.NoError(t, fsys.MkdirAll(dir, 0755))

	path := filepath.Join(dir, "ossec.log")
	require.NoError(t, fsys.WriteFile(path, []byte("line one\n"), 0644))

	f, err := fsys.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.Write([]byte("line two\n"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	r, err := fsys.Open(path)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "line one\nline two\n", string(data))

	info, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "ossec.log", info.Name())

	_, err = fsys.Lstat(path)
	require.NoError(t, err)

	require.NoError(t, fsys.Remove(path))
	_, err = fsys.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOSFS(t *testing.T) {
	exerciseFS(t, NewOS(), t.TempDir())
}

func TestMemoryFS(t *testing.T) {
	exerciseFS(t, NewMemory(), "/var/ossec")
}

func TestAferoReadFileOnDirectory(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/logs", 0755))

	_, err := fsys.ReadFile("/logs")
	assert.Error(t, err)
}

func TestAferoSymlinkFallback(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/fixtures", 0755))

	require.NoError(t, fsys.Symlink("/fixtures/link", "/fixtures/link"))

	_, err := fsys.Stat("/fixtures/link")
	assert.NoError(t, err)
}
