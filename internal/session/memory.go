package session

import (
	"context"
	"sync"

	"github.com/warungpos/storefront/internal/domain"
)

// MemoryStore keeps session records in process memory. Sessions don't survive
// a restart; intended for local development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{customers: make(map[string]domain.Customer)}
}

func (s *MemoryStore) Save(_ context.Context, token string, customer *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[token] = *customer
	return nil
}

func (s *MemoryStore) Load(_ context.Context, token string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[token]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.customers, token)
	return nil
}
