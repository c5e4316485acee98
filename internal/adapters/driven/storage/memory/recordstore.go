package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// Records are copied on the way in and out.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]map[string]domain.Record
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]map[string]domain.Record),
	}
}

// Save stores or replaces a record.
func (s *RecordStore) Save(_ context.Context, rec *domain.Record) error {
	if rec == nil || rec.Type == "" || rec.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.records[rec.Type]
	if !ok {
		byID = make(map[string]domain.Record)
		s.records[rec.Type] = byID
	}
	byID[rec.ID] = clone(rec)
	return nil
}

// Get retrieves a record by type and id.
func (s *RecordStore) Get(_ context.Context, typ, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[typ][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := clone(&rec)
	return &out, nil
}

// List returns the records matching q, ordered by id.
func (s *RecordStore) List(_ context.Context, q domain.Query) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.match(q)
	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return []domain.Record{}, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	out := make([]domain.Record, len(matched))
	for i := range matched {
		out[i] = clone(&matched[i])
	}
	return out, nil
}

// Count returns how many records match q, ignoring offset and limit.
func (s *RecordStore) Count(_ context.Context, q domain.Query) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.match(q)), nil
}

// Delete removes a record.
func (s *RecordStore) Delete(_ context.Context, typ, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[typ][id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records[typ], id)
	return nil
}

// match returns the filtered records in id order (caller must hold lock).
func (s *RecordStore) match(q domain.Query) []domain.Record {
	excluded := make(map[string]bool, len(q.ExcludeIDs))
	for _, id := range q.ExcludeIDs {
		excluded[id] = true
	}
	var discs map[string]bool
	if len(q.Discriminators) > 0 {
		discs = make(map[string]bool, len(q.Discriminators))
		for _, d := range q.Discriminators {
			discs[d] = true
		}
	}

	var out []domain.Record
	for id, rec := range s.records[q.Type] {
		if excluded[id] {
			continue
		}
		if discs != nil && !discs[rec.Discriminator] {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return domain.LessID(out[i].ID, out[j].ID) })
	return out
}

func clone(rec *domain.Record) domain.Record {
	c := *rec
	if rec.Attributes != nil {
		c.Attributes = make(map[string]any, len(rec.Attributes))
		for k, v := range rec.Attributes {
			c.Attributes[k] = v
		}
	}
	if rec.Refs != nil {
		c.Refs = make(map[string][]domain.Ref, len(rec.Refs))
		for k, v := range rec.Refs {
			c.Refs[k] = append([]domain.Ref{}, v...)
		}
	}
	return c
}
