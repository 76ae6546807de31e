// Package storage holds the key/value stores the blog persists into: a
// durable one for the post collection and a session-scoped one for the admin
// marker. Both are treated as unreliable by their callers.
package storage

import (
	"sync"

	"gemblog/internal/repository"

	"github.com/gin-contrib/sessions"
)

// Store is a string key/value store. Get reports false for a missing key.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// SQLStore is the durable store backed by the entries table.
type SQLStore struct {
	repo *repository.EntryRepository
}

func NewSQLStore(repo *repository.EntryRepository) *SQLStore {
	return &SQLStore{repo: repo}
}

func (s *SQLStore) Get(key string) (string, bool, error) {
	entry, ok, err := s.repo.FindByKey(key)
	if err != nil || !ok {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *SQLStore) Set(key, value string) error {
	return s.repo.Upsert(key, value)
}

func (s *SQLStore) Remove(key string) error {
	return s.repo.DeleteByKey(key)
}

// SessionStore exposes one request's cookie session as a Store. Every write
// is saved immediately.
type SessionStore struct {
	session sessions.Session
}

func NewSessionStore(session sessions.Session) *SessionStore {
	return &SessionStore{session: session}
}

func (s *SessionStore) Get(key string) (string, bool, error) {
	v, ok := s.session.Get(key).(string)
	return v, ok, nil
}

func (s *SessionStore) Set(key, value string) error {
	s.session.Set(key, value)
	return s.session.Save()
}

func (s *SessionStore) Remove(key string) error {
	s.session.Delete(key)
	return s.session.Save()
}

// MemoryStore keeps values in a map. It loses everything on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
