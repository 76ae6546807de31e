package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gemblog/internal/constants"
	"gemblog/internal/metrics"
	"gemblog/internal/models"
)

var errNullCollection = errors.New("stored post collection is null")

// PostStore persists the whole post collection as JSON under one key of a
// Store. It never returns an error: a failed read falls back to the seed
// posts and a failed write is logged and counted.
type PostStore struct {
	store Store
	key   string
	log   *slog.Logger
	now   func() time.Time
}

func NewPostStore(store Store, log *slog.Logger) *PostStore {
	return &PostStore{
		store: store,
		key:   constants.StoreKeyPosts,
		log:   log,
		now:   time.Now,
	}
}

// Load returns the stored collection, or the seed posts when the key is
// missing, unreadable or corrupt.
func (s *PostStore) Load() []models.Post {
	posts, _ := s.Restore()
	return posts
}

// Restore is Load that also reports whether the store could be read. It is
// false only when Get failed, in which case the stored value may still be
// intact and must not be overwritten with the seed.
func (s *PostStore) Restore() ([]models.Post, bool) {
	var (
		raw string
		ok  bool
	)
	err := guard(func() error {
		var err error
		raw, ok, err = s.store.Get(s.key)
		return err
	})
	if err != nil {
		metrics.StorageFailuresTotal.WithLabelValues("read").Inc()
		s.log.Error("error reading posts from store", slog.Any("err", err))
		return SeedPosts(s.now()), false
	}
	if !ok {
		s.log.Info("no stored posts, using seed collection")
		return SeedPosts(s.now()), true
	}

	posts, err := decodePosts(raw)
	if err != nil {
		metrics.StorageFailuresTotal.WithLabelValues("decode").Inc()
		s.log.Error("error reading posts from store", slog.Any("err", err))
		return SeedPosts(s.now()), true
	}
	return posts, true
}

// Save writes the collection. It reports whether the write succeeded; the
// in-memory collection stays authoritative either way.
func (s *PostStore) Save(posts []models.Post) bool {
	if posts == nil {
		posts = []models.Post{}
	}
	data, err := json.Marshal(posts)
	if err == nil {
		err = guard(func() error { return s.store.Set(s.key, string(data)) })
	}
	if err != nil {
		metrics.StorageFailuresTotal.WithLabelValues("write").Inc()
		s.log.Error("error saving posts to store", slog.Any("err", err))
		return false
	}
	return true
}

func decodePosts(raw string) ([]models.Post, error) {
	var posts []models.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		return nil, errNullCollection
	}
	return posts, nil
}

// guard turns a panicking store call into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("store panicked: %v", r)
		}
	}()
	return fn()
}
