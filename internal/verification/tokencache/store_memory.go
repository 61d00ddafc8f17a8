package tokencache

import (
	"context"
	"sync"
	"sync/atomic"

	"integrationhub/internal/verification/models"
)

// MemoryStore keeps tokens in process. Each provider slot is an atomic pointer,
// so the token and its expiry are always published together.
type MemoryStore struct {
	slots sync.Map // providerID -> *atomic.Pointer[models.CachedToken]
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) slot(providerID string) *atomic.Pointer[models.CachedToken] {
	if p, ok := s.slots.Load(providerID); ok {
		return p.(*atomic.Pointer[models.CachedToken])
	}
	p, _ := s.slots.LoadOrStore(providerID, new(atomic.Pointer[models.CachedToken]))
	return p.(*atomic.Pointer[models.CachedToken])
}

func (s *MemoryStore) Load(_ context.Context, providerID string) (*models.CachedToken, error) {
	return s.slot(providerID).Load(), nil
}

func (s *MemoryStore) CompareAndSwap(_ context.Context, providerID string, old, next *models.CachedToken) (bool, error) {
	return s.slot(providerID).CompareAndSwap(old, next), nil
}
