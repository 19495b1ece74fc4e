package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpoolSaveOpenDelete(t *testing.T) {
	spool, err := NewSpool(filepath.Join(t.TempDir(), "spool"))
	require.NoError(t, err)

	size, err := spool.Save("obj-1", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	f, err := spool.Open("obj-1")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "hello", string(data))

	require.NoError(t, spool.Delete("obj-1"))
	require.NoError(t, spool.Delete("obj-1"))
	_, err = spool.Open("obj-1")
	require.Error(t, err)
}

func TestSpoolRejectsTraversal(t *testing.T) {
	spool, err := NewSpool(t.TempDir())
	require.NoError(t, err)
	_, err = spool.Save("../escape", []byte("x"))
	require.Error(t, err)
}

func TestSpoolCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	spool, err := NewSpool(dir)
	require.NoError(t, err)

	_, err = spool.Save("old", []byte("1"))
	require.NoError(t, err)
	_, err = spool.Save("fresh", []byte("2"))
	require.NoError(t, err)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old"), past, past))

	deleted, err := spool.CleanupOlderThan(10 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, deleted)

	_, err = os.Stat(filepath.Join(dir, "fresh"))
	assert.NoError(t, err)
}
