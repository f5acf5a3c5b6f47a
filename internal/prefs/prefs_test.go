package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoon-dev/lunchscout/pkg/types"
)

func TestLoad_MissingFileReturnsEmptySet(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))

	set := store.Load()
	assert.Empty(t, set.Dislikes)
	assert.Empty(t, set.Favorites)
}

func TestLoad_CorruptFileReturnsEmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	set := NewFileStore(path).Load()
	assert.Empty(t, set.Dislikes)
	assert.Empty(t, set.Favorites)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	store := NewFileStore(path)

	err := store.Save(types.PreferenceSet{
		Dislikes:  []string{"오이", "고수"},
		Favorites: []string{"초밥"},
	})
	require.NoError(t, err)

	loaded := store.Load()
	assert.Equal(t, []string{"오이", "고수"}, loaded.Dislikes)
	assert.Equal(t, []string{"초밥"}, loaded.Favorites)
}

func TestSave_DeduplicatesKeepingOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	store := NewFileStore(path)

	err := store.Save(types.PreferenceSet{
		Dislikes:  []string{"오이", "고수", "오이"},
		Favorites: []string{"초밥", "초밥", "김치찌개"},
	})
	require.NoError(t, err)

	loaded := store.Load()
	assert.Equal(t, []string{"오이", "고수"}, loaded.Dislikes)
	assert.Equal(t, []string{"초밥", "김치찌개"}, loaded.Favorites)
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(types.PreferenceSet{Favorites: []string{"초밥"}}))
	assert.Equal(t, []string{"초밥"}, store.Load().Favorites)
}
