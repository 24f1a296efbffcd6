package store

import (
	"context"
	"sync"

	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/ports"
)

// MemoryStore is an in-memory implementation of the RecordStore interface.
// Records are returned in insertion order.
type MemoryStore struct {
	order   []core.ID
	records map[core.ID]core.Document
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() ports.RecordStore {
	return &MemoryStore{
		records: make(map[core.ID]core.Document),
	}
}

// Insert stores doc under a freshly minted id
func (s *MemoryStore) Insert(ctx context.Context, doc core.Document) (core.InsertResult, error) {
	return s.InsertWithID(ctx, core.NewID(), doc)
}

// InsertWithID stores doc under id
func (s *MemoryStore) InsertWithID(ctx context.Context, id core.ID, doc core.Document) (core.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; exists {
		return core.InsertResult{}, core.ErrDuplicateID
	}

	rec := doc.WithoutID()
	rec[core.FieldID] = id
	s.records[id] = rec
	s.order = append(s.order, id)

	return core.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// Find returns copies of the matching records inside page
func (s *MemoryStore) Find(ctx context.Context, filter core.Filter, page core.Page) ([]core.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []core.Document{}
	var skipped int64
	for _, id := range s.order {
		rec := s.records[id]
		if !filter.Matches(rec) {
			continue
		}
		if skipped < page.Skip {
			skipped++
			continue
		}
		if page.Limit > 0 && int64(len(out)) >= page.Limit {
			break
		}
		out = append(out, rec.Clone())
	}

	return out, nil
}

// Count returns the number of matching records
func (s *MemoryStore) Count(ctx context.Context, filter core.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, rec := range s.records {
		if filter.Matches(rec) {
			n++
		}
	}
	return n, nil
}

// FindByID retrieves a copy of a record by id
func (s *MemoryStore) FindByID(ctx context.Context, id core.ID) (core.Document, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, false, nil
	}
	return rec.Clone(), true, nil
}

// SetFields overwrites fields of an existing record
func (s *MemoryStore) SetFields(ctx context.Context, id core.ID, fields core.Document) (core.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return core.UpdateResult{Acknowledged: true}, nil
	}

	var modified int64
	for k, v := range fields.WithoutID() {
		if old, exists := rec[k]; !exists || !sameValue(old, v) {
			modified = 1
		}
		rec[k] = v
	}

	return core.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
}

// DeleteByID removes a record if present
func (s *MemoryStore) DeleteByID(ctx context.Context, id core.ID) (core.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return core.DeleteResult{Acknowledged: true}, nil
	}

	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return core.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// Ping always succeeds
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Clear removes all records
// This is useful for testing to reset the store between tests
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.records = make(map[core.ID]core.Document)
}

// sameValue compares scalar field values; composite values always count as changed.
func sameValue(a, b any) bool {
	switch a.(type) {
	case nil, string, bool, float64, int, int32, int64, core.ID:
		return a == b
	}
	return false
}
