package cart

import "sync"

// Store holds one cart per browsing session. Carts live in memory only; a
// session that never comes back simply leaves an empty map entry behind,
// which Drop removes after checkout or logout.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Cart returns the session's cart, creating an empty one on first use.
func (s *Store) Cart(sessionToken string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionToken]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionToken]; ok {
		return c
	}
	c = New()
	s.carts[sessionToken] = c
	return c
}

// Drop forgets a session's cart entirely.
func (s *Store) Drop(sessionToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionToken)
}
