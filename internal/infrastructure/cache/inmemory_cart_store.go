package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain/shopping"
)

// InMemoryCartStore implements shopping.CartStore in process memory.
// Suitable for tests and single-instance development setups; state is
// lost on restart.
type InMemoryCartStore struct {
	mu      sync.RWMutex
	carts   map[string][]byte    // ownerKey -> cart JSON
	expires map[string]time.Time // ownerKey -> expiry
	ttl     time.Duration
}

// NewInMemoryCartStore creates a new in-memory cart store
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	return &InMemoryCartStore{
		carts:   make(map[string][]byte),
		expires: make(map[string]time.Time),
		ttl:     ttl,
	}
}

// Get fetches a cart, returning a fresh empty cart when none exists or
// the stored one has expired
func (s *InMemoryCartStore) Get(_ context.Context, ownerKey string) (*shopping.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, exists := s.carts[ownerKey]
	if !exists || time.Now().After(s.expires[ownerKey]) {
		delete(s.carts, ownerKey)
		delete(s.expires, ownerKey)
		return shopping.NewCart(ownerKey)
	}

	var cart shopping.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Put stores a cart and resets its TTL
func (s *InMemoryCartStore) Put(_ context.Context, cart *shopping.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cart.OwnerKey] = data
	s.expires[cart.OwnerKey] = time.Now().Add(s.ttl)
	return nil
}

// Delete removes a cart
func (s *InMemoryCartStore) Delete(_ context.Context, ownerKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, ownerKey)
	delete(s.expires, ownerKey)
	return nil
}

var _ shopping.CartStore = (*InMemoryCartStore)(nil)
