// Package memory implements an in-memory key-value Store for tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"fpadmin/internal/kv/core"
)

// Store implements core.Store backed by process memory.
type Store struct {
	mu   sync.RWMutex
	vals map[string][]byte
}

// New returns an empty in-memory store.
func New() *Store { return &Store{vals: make(map[string][]byte)} }

// Driver returns the backend identifier.
func (s *Store) Driver() core.Driver { return core.DriverMemory }

// Get returns a copy of the value stored at key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	v, ok := s.vals[key]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value, replacing any previous one.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("empty key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes the key returning true if it existed.
func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.vals[key]
	delete(s.vals, key)
	return ok, nil
}

// Keys returns the sorted keys carrying prefix.
func (s *Store) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.vals))
	for k := range s.vals {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}
