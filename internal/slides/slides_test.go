package slides

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func writeSlide(t *testing.T, dir, name string, width, height int) {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), height, width, gocv.MatTypeCV8UC3)
	defer mat.Close()
	require.True(t, gocv.IMWrite(filepath.Join(dir, name), mat))
}

func TestList_SortsAndFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.PNG", "notes.txt", "c.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.png"), 0o755))

	files, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.PNG", "b.png", "c.jpg"}, files)
}

func TestOpen_EmptyDir(t *testing.T) {
	_, err := Open(t.TempDir(), 1280, 720)
	assert.True(t, errors.Is(err, ErrNoSlides))
}

func TestOpen_MissingDir(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), 1280, 720)
	assert.Error(t, err)
}

func TestDirStore_Load(t *testing.T) {
	dir := t.TempDir()
	writeSlide(t, dir, "01.png", 320, 240)
	writeSlide(t, dir, "02.png", 640, 360)

	store, err := Open(dir, 128, 72)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, "02.png", store.Name(1))
	assert.Empty(t, store.Name(2))

	for i := 0; i < store.Len(); i++ {
		mat, err := store.Load(i)
		require.NoError(t, err)
		assert.Equal(t, 128, mat.Cols())
		assert.Equal(t, 72, mat.Rows())
		mat.Close()
	}

	// Cached slide is handed out as an independent copy.
	first, err := store.Load(1)
	require.NoError(t, err)
	first.Close()
	second, err := store.Load(1)
	require.NoError(t, err)
	defer second.Close()
	assert.False(t, second.Empty())
}

func TestDirStore_LoadOutOfRange(t *testing.T) {
	dir := t.TempDir()
	writeSlide(t, dir, "01.png", 32, 24)

	store, err := Open(dir, 32, 24)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load(5)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDirStore_LoadUndecodable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not an image"), 0o644))

	store, err := Open(dir, 32, 24)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load(0)
	assert.Error(t, err)
}
