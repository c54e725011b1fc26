// Package memory is a fully in-memory journal.Store. Safe for concurrent
// access. Intended for unit testing and development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/veldt/tap"
	"github.com/veldt/tap/id"
	"github.com/veldt/tap/journal"
)

// Compile-time interface check.
var _ journal.Store = (*Store)(nil)

// Store holds records in a mutex-guarded map.
type Store struct {
	mu      sync.RWMutex
	records map[string]*journal.Record
}

// New returns a new empty Store.
func New() *Store {
	return &Store{
		records: make(map[string]*journal.Record),
	}
}

// SaveRecord persists a copy of the record.
func (m *Store) SaveRecord(_ context.Context, rec *journal.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := rec.ID.String()
	if _, exists := m.records[key]; exists {
		return tap.ErrRecordExists
	}
	cp := *rec
	m.records[key] = &cp
	return nil
}

// GetRecord retrieves a record by ID.
func (m *Store) GetRecord(_ context.Context, recID id.RecordID) (*journal.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[recID.String()]
	if !ok {
		return nil, tap.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

// ListRecords returns up to limit records of the given kind, newest first.
func (m *Store) ListRecords(_ context.Context, kind string, limit int) ([]*journal.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*journal.Record, 0, len(m.records))
	for _, rec := range m.records {
		if kind != "" && rec.Kind != kind {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Ping always succeeds for the memory store.
func (m *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (m *Store) Close() error { return nil }
