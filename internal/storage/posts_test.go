package storage

import (
	"errors"
	"testing"
	"time"

	"gemblog/internal/constants"
	"gemblog/internal/logger"
	"gemblog/internal/models"
	"gemblog/internal/repository"
	"gemblog/internal/utils"

	"github.com/stretchr/testify/require"
)

var errBroken = errors.New("quota exceeded")

type brokenStore struct{ panics bool }

func (b brokenStore) Get(string) (string, bool, error) {
	if b.panics {
		panic("storage disabled")
	}
	return "", false, errBroken
}

func (b brokenStore) Set(string, string) error {
	if b.panics {
		panic("storage disabled")
	}
	return errBroken
}

func (b brokenStore) Remove(string) error { return errBroken }

func fixedNow() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }

func newPostStore(store Store) *PostStore {
	ps := NewPostStore(store, logger.Discard())
	ps.now = fixedNow
	return ps
}

func seedIDs(posts []models.Post) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestLoadEmptyStoreReturnsSeed(t *testing.T) {
	ps := newPostStore(NewMemoryStore())

	posts := ps.Load()
	require.Equal(t, []string{"1", "2", "3"}, seedIDs(posts))
	require.Equal(t, "The Rise of AI in Web Development", posts[0].Title)
	require.Equal(t, "AI", posts[0].Category)
	require.Equal(t, "2024-05-09T12:00:00.000Z", posts[0].CreatedAt)
	require.Equal(t, "2024-05-07T12:00:00.000Z", posts[2].CreatedAt)
}

func TestLoadCorruptValueReturnsSeed(t *testing.T) {
	for name, raw := range map[string]string{
		"garbage": "{not json",
		"object":  `{"id":"x"}`,
		"null":    "null",
	} {
		t.Run(name, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.Set(constants.StoreKeyPosts, raw))

			posts := newPostStore(store).Load()
			require.Equal(t, []string{"1", "2", "3"}, seedIDs(posts))
		})
	}
}

func TestLoadUnreadableStoreReturnsSeed(t *testing.T) {
	require.Len(t, newPostStore(brokenStore{}).Load(), 3)
	require.Len(t, newPostStore(brokenStore{panics: true}).Load(), 3)
}

func TestRestoreReportsReadFailures(t *testing.T) {
	_, readable := newPostStore(brokenStore{}).Restore()
	require.False(t, readable)

	_, readable = newPostStore(NewMemoryStore()).Restore()
	require.True(t, readable)

	store := NewMemoryStore()
	require.NoError(t, store.Set(constants.StoreKeyPosts, "{not json"))
	posts, readable := newPostStore(store).Restore()
	require.True(t, readable)
	require.Len(t, posts, 3)
}

func TestLoadEmptyArrayIsKept(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(constants.StoreKeyPosts, "[]"))

	posts := newPostStore(store).Load()
	require.NotNil(t, posts)
	require.Empty(t, posts)
}

func TestSaveThenLoad(t *testing.T) {
	store := NewMemoryStore()
	ps := newPostStore(store)

	in := []models.Post{
		{ID: "b", Title: "B", Content: "b", CreatedAt: "2024-01-02T00:00:00.000Z"},
		{ID: "a", Title: "A", Content: "a", CreatedAt: "2024-01-01T00:00:00.000Z", Category: "Go", ImageURL: "data:image/png;base64,AAAA"},
	}
	require.True(t, ps.Save(in))
	require.Equal(t, in, ps.Load())

	raw, ok, err := store.Get(constants.StoreKeyPosts)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, raw, `"imageUrl":"data:image/png;base64,AAAA"`)
	require.Contains(t, raw, `"createdAt":"2024-01-02T00:00:00.000Z"`)
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	require.False(t, newPostStore(brokenStore{}).Save([]models.Post{{ID: "1"}}))
	require.False(t, newPostStore(brokenStore{panics: true}).Save(nil))
}

func TestSQLStoreRoundTrip(t *testing.T) {
	db, err := utils.InitDatabase(utils.MemoryDSN())
	require.NoError(t, err)
	store := NewSQLStore(repository.NewEntryRepository(db))

	_, ok, err := store.Get("k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set("k", "v"))
	v, ok, err := store.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)

	require.NoError(t, store.Remove("k"))
	_, ok, err = store.Get("k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPostStoreOverSQL(t *testing.T) {
	db, err := utils.InitDatabase(utils.MemoryDSN())
	require.NoError(t, err)
	ps := newPostStore(NewSQLStore(repository.NewEntryRepository(db)))

	seed := ps.Load()
	require.True(t, ps.Save(seed[:1]))
	require.Equal(t, seed[:1], ps.Load())
}
