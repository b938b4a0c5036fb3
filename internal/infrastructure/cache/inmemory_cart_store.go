package cache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sheeto/backend/internal/domain/cart"
)

// InMemoryCartStore implements cart.Store using an in-memory map.
// This is suitable for single-instance development setups and testing.
// Carts are held as JSON blobs so the store has the same serialization
// behavior as the Redis-backed implementation.
type InMemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewInMemoryCartStore creates a new in-memory cart store
func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{
		carts: make(map[string][]byte),
	}
}

// Load fetches the cart stored for the session, or an empty cart
func (s *InMemoryCartStore) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	s.mu.RLock()
	payload, exists := s.carts[sessionID]
	s.mu.RUnlock()

	if !exists {
		return cart.New(sessionID), nil
	}

	var c cart.Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		s.mu.Lock()
		delete(s.carts, sessionID)
		s.mu.Unlock()
		return cart.New(sessionID), nil
	}

	c.SessionID = sessionID
	if c.Items == nil {
		c.Items = make([]cart.Item, 0)
	}
	return &c, nil
}

// Save stores the cart
func (s *InMemoryCartStore) Save(ctx context.Context, c *cart.Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.carts[c.SessionID] = payload
	s.mu.Unlock()
	return nil
}

// Delete removes the cart stored for the session
func (s *InMemoryCartStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}

var _ cart.Store = (*InMemoryCartStore)(nil)
