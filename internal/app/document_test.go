package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o600))

	doc, err := OpenDocument(path, false)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", doc.Name)
	assert.Equal(t, "one\ntwo\n", doc.Store.String())
	assert.False(t, doc.IsModified())
	assert.False(t, doc.IsScratch())
}

func TestOpenMissingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	doc, err := OpenDocument(path, false)
	require.NoError(t, err)
	assert.Empty(t, doc.Store.String())

	require.NoError(t, doc.Store.Insert(0, "hi"))
	assert.True(t, doc.IsModified())

	n, err := doc.Save()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, doc.IsModified())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func TestScratchDocument(t *testing.T) {
	doc, err := OpenDocument("", false)
	require.NoError(t, err)
	assert.True(t, doc.IsScratch())

	_, err = doc.Save()
	assert.ErrorIs(t, err, ErrNoFilePath)

	path := filepath.Join(t.TempDir(), "out.txt")
	_, err = doc.SaveAs(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "out.txt", doc.Name)
}

func TestReadOnlyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	doc, err := OpenDocument(path, true)
	require.NoError(t, err)
	assert.True(t, doc.Store.ReadOnly())

	_, err = doc.Save()
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestSaveAsFailure(t *testing.T) {
	doc := NewScratchDocument()
	_, err := doc.SaveAs(filepath.Join(t.TempDir(), "missing", "x.txt"))
	var fe *FileError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "write", fe.Op)
}
