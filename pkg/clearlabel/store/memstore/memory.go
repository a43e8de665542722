// Package memstore is an in-memory store.Store implementation for tests
// and embedding.
package memstore

import (
	"context"
	"sync"

	"github.com/clearlabel/clearlabel/pkg/clearlabel/hazard"
)

// Store holds a dataset in memory. Safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	ds hazard.Dataset
}

// New creates a memstore seeded with the given dataset.
func New(ds hazard.Dataset) *Store {
	return &Store{ds: ds}
}

// LoadSnapshot implements store.Store.
func (s *Store) LoadSnapshot(ctx context.Context) (hazard.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyDataset(s.ds), nil
}

// SetDataset replaces the stored dataset. Tests use this to simulate an
// external refresh.
func (s *Store) SetDataset(ds hazard.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = ds
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

func copyDataset(ds hazard.Dataset) hazard.Dataset {
	out := hazard.Dataset{
		Records:      make([]hazard.Record, len(ds.Records)),
		Alternatives: make(map[string]hazard.Alternative, len(ds.Alternatives)),
		Categories:   make(map[string]string, len(ds.Categories)),
	}
	copy(out.Records, ds.Records)
	for k, v := range ds.Alternatives {
		out.Alternatives[k] = v
	}
	for k, v := range ds.Categories {
		out.Categories[k] = v
	}
	return out
}
