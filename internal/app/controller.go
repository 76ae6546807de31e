package app

import (
	"log/slog"
	"sync"
	"time"

	"gemblog/internal/constants"
	"gemblog/internal/metrics"
	"gemblog/internal/models"
	"gemblog/internal/storage"

	"github.com/google/uuid"
)

// Controller owns the post collection. Every change is written through to
// the post store; a failed write leaves the in-memory collection correct but
// unpersisted.
type Controller struct {
	mu       sync.RWMutex
	posts    []models.Post
	store    *storage.PostStore
	password string
	log      *slog.Logger

	now   func() time.Time
	newID func() string
}

// Option customises a Controller.
type Option func(*Controller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

// NewController loads the collection from store and writes it straight back,
// so a seeded collection is persisted on first start. The write is skipped
// when the store could not be read at all.
func NewController(store *storage.PostStore, adminPassword string, log *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		password: adminPassword,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	posts, readable := store.Restore()
	c.posts = posts
	if readable {
		c.persist()
	} else {
		metrics.PostsTotal.Set(float64(len(posts)))
	}
	return c
}

// Posts returns a snapshot of the collection in display order.
func (c *Controller) Posts() []models.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// Post looks up a single post.
func (c *Controller) Post(id string) (models.Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FindPost(c.posts, id)
}

// Save creates or updates a post from an editor draft. ok is false when the
// draft names an id that is not in the collection; nothing changes then.
func (c *Controller) Save(draft models.PostDraft) (models.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out, saved, ok := SavePost(c.posts, draft, c.now(), c.newID)
	if !ok {
		c.log.Warn("save ignored, no post with this id", slog.String("id", draft.ID))
		return models.Post{}, false
	}
	c.posts = out
	c.persistLocked()
	c.log.Info("post saved", slog.String("id", saved.ID), slog.Bool("created", draft.ID == ""))
	return saved, true
}

// Delete removes a post once the user confirmed it. There is no undo.
func (c *Controller) Delete(id string, confirmed bool) bool {
	if !confirmed {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out, removed := DeletePost(c.posts, id)
	if !removed {
		return false
	}
	c.posts = out
	c.persistLocked()
	c.log.Info("post deleted", slog.String("id", id))
	return true
}

// Import adds posts that are not in the collection yet and persists once.
func (c *Controller) Import(posts []models.Post) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out, added := MergePosts(c.posts, posts)
	if added == 0 {
		return 0
	}
	c.posts = out
	c.persistLocked()
	c.log.Info("posts imported", slog.Int("added", added), slog.Int("skipped", len(posts)-added))
	return added
}

// Login compares password with the admin secret in plaintext. On a match the
// session marker is set.
func (c *Controller) Login(session storage.Store, password string) bool {
	if password != c.password {
		return false
	}
	if err := session.Set(constants.SessionKeyAuthenticated, constants.SessionValueTrue); err != nil {
		c.log.Error("error saving admin session", slog.Any("err", err))
	}
	return true
}

// Logout removes the session marker regardless of the prior state.
func (c *Controller) Logout(session storage.Store) {
	if err := session.Remove(constants.SessionKeyAuthenticated); err != nil {
		c.log.Error("error clearing admin session", slog.Any("err", err))
	}
}

// IsAdmin reports whether the session carries the admin marker.
func (c *Controller) IsAdmin(session storage.Store) bool {
	v, ok, err := session.Get(constants.SessionKeyAuthenticated)
	if err != nil {
		c.log.Error("error reading admin session", slog.Any("err", err))
		return false
	}
	return ok && v == constants.SessionValueTrue
}

func (c *Controller) persist() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.persistLocked()
}

func (c *Controller) persistLocked() {
	metrics.PostsTotal.Set(float64(len(c.posts)))
	c.store.Save(c.posts)
}
