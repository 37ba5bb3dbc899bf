// Package memory provides an in-process kv.Store used by tests and the
// "memory" backend.
package memory

import (
	"context"
	"maps"
	"sync"
)

type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

func New() *Store {
	return &Store{data: make(map[string]string)}
}

// NewWithData returns a store pre-seeded with a copy of data.
func NewWithData(data map[string]string) *Store {
	s := New()
	maps.Copy(s.data, data)

	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]

	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value

	return nil
}

// Snapshot returns a copy of every stored entry.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.data)
}
