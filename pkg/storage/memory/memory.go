// Package memory is an in-process panel.Store keyed by content ID.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-metabox/pkg/panel"
)

// Store keeps metadata in nested maps. Values are stored as given.
type Store struct {
	mu       sync.RWMutex
	metadata map[string]map[string]any
}

var _ panel.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{metadata: make(map[string]map[string]any)}
}

// Get retrieves one metadata value.
func (s *Store) Get(_ context.Context, contentID, key string) (any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.metadata[contentID][key]
	return value, ok, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(_ context.Context, contentID, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.metadata[contentID]
	if !ok {
		bucket = make(map[string]any)
		s.metadata[contentID] = bucket
	}
	bucket[key] = value
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(_ context.Context, contentID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.metadata[contentID]
	if !ok {
		return nil
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(s.metadata, contentID)
	}
	return nil
}

// All returns a copy of every value stored for contentID.
func (s *Store) All(_ context.Context, contentID string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, len(s.metadata[contentID]))
	for key, value := range s.metadata[contentID] {
		out[key] = value
	}
	return out, nil
}

// ContentIDs lists content items with at least one value, sorted.
func (s *Store) ContentIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.metadata))
	for id := range s.metadata {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
