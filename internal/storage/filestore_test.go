package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSaveAndExists(t *testing.T) {
	store := newTestStore(t)

	exists, err := store.Exists("foto.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	n, err := store.Save("foto.jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(16), n)

	exists, err = store.Exists("foto.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save("foto.jpg", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = store.Save("foto.jpg", strings.NewReader("second version"))
	require.NoError(t, err)

	f, err := store.Open("foto.jpg")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "second version", string(data))
}

func TestList(t *testing.T) {
	store := newTestStore(t)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, name := range []string{"b.png", "a.jpg", "c.gif"} {
		_, err := store.Save(name, strings.NewReader("x"))
		require.NoError(t, err)
	}

	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.png", "c.gif"}, names)
}

func TestOpenMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Open("nope.jpg")
	require.Error(t, err)
}

func TestPathTraversalRejected(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"../escape.jpg", "dir/inner.jpg", "..", ""} {
		_, err := store.Save(name, strings.NewReader("x"))
		assert.Error(t, err, "name %q must be rejected", name)

		_, err = store.Exists(name)
		assert.Error(t, err, "name %q must be rejected", name)
	}
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save("foto.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, store.Remove("foto.jpg"))

	exists, err := store.Exists("foto.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	// removing a missing file is not an error
	assert.NoError(t, store.Remove("foto.jpg"))
}
