// Package memory implements an in-memory key-value Store for tests and
// throwaway sessions.
package memory

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

var _ types.BatchStore = (*Store)(nil)

// Store implements types.BatchStore backed by process memory.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	writes int
}

// New returns an empty in-memory store.
func New() *Store { return &Store{values: make(map[string]string)} }

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, types.ErrInvalidKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set overwrites the value stored under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.writes++
	return nil
}

// SetMany writes all entries under one lock.
func (s *Store) SetMany(_ context.Context, entries map[string]string) error {
	for k := range entries {
		if k == "" {
			return types.ErrInvalidKey
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range entries {
		s.values[k] = v
		s.writes++
	}
	return nil
}

// Writes returns the number of key writes performed so far.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
