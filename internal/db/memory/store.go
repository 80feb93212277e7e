// Package memory provides an in-process db.Store backed by a mutex-guarded
// map. It is the default driver: durability is an external concern here,
// and a single lock gives the per-key atomicity the repository relies on
// for free.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kailas-cloud/stringdex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store is an in-memory key-value store. Keys preserve insertion order
// for reproducible scans.
type Store struct {
	mu    sync.RWMutex
	data  map[string][]byte
	order []string
}

// NewStore creates an empty memory store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close releases nothing; present to satisfy db.Store.
func (s *Store) Close() {}

// WaitForReady returns immediately; a memory store is always ready.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return cloneBytes(v), nil
}

// GetMulti retrieves values for keys; missing keys yield nil entries.
func (s *Store) GetMulti(_ context.Context, keys []string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([][]byte, len(keys))
	for i, k := range keys {
		if v, ok := s.data[k]; ok {
			out[i] = cloneBytes(v)
		}
	}
	return out, nil
}

// Set stores a value at the given key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		s.order = append(s.order, key)
	}
	s.data[key] = cloneBytes(value)
	return nil
}

// SetNX stores the value only if the key is absent. The existence check
// and the write happen under one lock, so concurrent creators of the
// same key see exactly one winner.
func (s *Store) SetNX(_ context.Context, key string, value []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; ok {
		return false, nil
	}
	s.data[key] = cloneBytes(value)
	s.order = append(s.order, key)
	return true, nil
}

// Del removes a key, reporting whether it existed.
func (s *Store) Del(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return false, nil
	}
	delete(s.data, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Exists checks if a key exists.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[key]
	return ok, nil
}

// Scan returns keys matching a pattern in insertion order. Patterns are
// the prefix-glob subset the repositories use: "prefix*" or an exact key.
func (s *Store) Scan(_ context.Context, pattern string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.order))
	for _, k := range s.order {
		if matchPattern(pattern, k) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func matchPattern(pattern, key string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(key, prefix)
	}
	return pattern == key
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
