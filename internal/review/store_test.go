package review

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/model"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.json")
	s, err := NewStore(path, zerolog.Nop())
	require.NoError(t, err)
	return s, path
}

func TestStore_MissingFileIsEmptyStore(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Empty(t, s.All())
}

func TestStore_SetAndGet(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Set(1, 4))

	rating, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 4, rating)
}

func TestStore_Get_Unrated(t *testing.T) {
	s, _ := newTestStore(t)

	_, ok := s.Get(42)

	assert.False(t, ok)
}

func TestStore_Set_OutOfRange(t *testing.T) {
	s, _ := newTestStore(t)

	assert.ErrorIs(t, s.Set(1, 0), model.ErrInvalidRating)
	assert.ErrorIs(t, s.Set(1, 6), model.ErrInvalidRating)
}

func TestStore_Set_ReplacesPriorRating(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Set(1, 2))
	require.NoError(t, s.Set(1, 5))

	rating, _ := s.Get(1)
	assert.Equal(t, 5, rating)
	assert.Len(t, s.All(), 1)
}

func TestStore_RatingsSurviveReload(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, s.Set(1, 5))
	require.NoError(t, s.Set(7, 3))

	reloaded, err := NewStore(path, zerolog.Nop())
	require.NoError(t, err)

	rating, ok := reloaded.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 5, rating)
	rating, ok = reloaded.Get(7)
	assert.True(t, ok)
	assert.Equal(t, 3, rating)
}

func TestStore_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewStore(path, zerolog.Nop())

	assert.ErrorContains(t, err, "failed to parse ratings file")
}

func TestStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "reviews.json")
	s, err := NewStore(path, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Set(1, 3))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
