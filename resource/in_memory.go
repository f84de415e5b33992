package resource

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// InMemoryStore is a trivial in‑process resource store that serves both
// local paths (Read) and remote locators (Fetch) from one map guarded by an
// RWMutex. Data is copied on save / retrieval to avoid accidental external
// mutation of internal buffers.
//
// Names are matched verbatim: "./app.json" and "app.json" are different
// resources.
type InMemoryStore struct {
	mu        sync.RWMutex
	resources map[string][]byte
}

// NewInMemoryStore returns an empty in‑memory resource store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{resources: make(map[string][]byte)}
}

// Put stores (or overwrites) the bytes for name. The input slice is copied
// before storage.
func (s *InMemoryStore) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.resources[name] = cp
}

// Read returns a copy of the bytes stored under path or ErrNotFound.
func (s *InMemoryStore) Read(ctx context.Context, path string) ([]byte, error) {
	return s.get(ctx, path)
}

// Fetch returns a copy of the bytes stored under locator or ErrNotFound.
func (s *InMemoryStore) Fetch(ctx context.Context, locator string) ([]byte, error) {
	return s.get(ctx, locator)
}

func (s *InMemoryStore) get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.resources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the stored names in lexical order. The slice is a snapshot
// and safe for caller mutation.
func (s *InMemoryStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.resources))
	for name := range s.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Delete removes the resource if present or returns ErrNotFound.
func (s *InMemoryStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[name]; !ok {
		return ErrNotFound
	}
	delete(s.resources, name)
	return nil
}
