package translog

import (
	"context"
	"sync"
	"time"

	"integrationhub/pkg/platform/sentinel"
)

// InMemoryStore keeps entries in insertion order. Used when no database is
// configured and in tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	entries []Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e.ID = s.nextID
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, *e)
	return nil
}

// List returns matching entries newest first, capped at ListLimit.
func (s *InMemoryStore) List(_ context.Context, f Filter) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, min(len(s.entries), ListLimit))
	for i := len(s.entries) - 1; i >= 0 && len(out) < ListLimit; i-- {
		if f.matches(s.entries[i]) {
			out = append(out, s.entries[i])
		}
	}
	return out, nil
}

func (s *InMemoryStore) Get(_ context.Context, id int64) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			e := s.entries[i]
			return &e, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (f Filter) matches(e Entry) bool {
	switch {
	case f.CallerID != "":
		return e.CallerID == f.CallerID
	case f.Service != "":
		return e.Service == f.Service
	case f.Status != "":
		return e.Status == f.Status
	default:
		return true
	}
}
