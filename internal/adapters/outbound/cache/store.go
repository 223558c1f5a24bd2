package cache

import (
	"errors"
	"sync"

	"github.com/dibella/orderdesk/internal/domain"
)

// Store is an in-memory implementation of domain.CatalogCache. Snapshots
// live only as long as the process; nothing is written to disk.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.CatalogSnapshot
}

// New creates an empty catalog store.
func New() *Store {
	return &Store{snapshots: make(map[string]*domain.CatalogSnapshot)}
}

// Load returns a copy of the snapshot stored under key. Returns (nil, nil)
// if nothing is cached.
func (s *Store) Load(key string) (*domain.CatalogSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[key]
	if !ok {
		return nil, nil // no cache is not an error
	}
	return clone(snap), nil
}

// Save stores a copy of the snapshot under its key, replacing any previous one.
func (s *Store) Save(snapshot *domain.CatalogSnapshot) error {
	if snapshot == nil || snapshot.Key == "" {
		return errors.New("catalog snapshot needs a key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.Key] = clone(snapshot)
	return nil
}

// Invalidate drops the snapshot stored under key.
func (s *Store) Invalidate(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, key)
	return nil
}

func clone(snap *domain.CatalogSnapshot) *domain.CatalogSnapshot {
	out := *snap
	out.Products = make([]domain.Product, len(snap.Products))
	copy(out.Products, snap.Products)
	return &out
}
