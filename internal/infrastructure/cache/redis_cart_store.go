package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/backend/internal/domain/shopping"
)

// RedisCartStore implements shopping.CartStore on Redis. Carts are
// stored as JSON under one key per owner and expire after the
// configured TTL; every write resets the clock.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCartStore creates a cart store with an existing Redis client
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client:    client,
		keyPrefix: "cart:",
		ttl:       ttl,
	}
}

func (s *RedisCartStore) key(ownerKey string) string {
	return s.keyPrefix + ownerKey
}

// Get fetches a cart, returning a fresh empty cart when none exists
func (s *RedisCartStore) Get(ctx context.Context, ownerKey string) (*shopping.Cart, error) {
	data, err := s.client.Get(ctx, s.key(ownerKey)).Bytes()
	if err == redis.Nil {
		return shopping.NewCart(ownerKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart shopping.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	return &cart, nil
}

// Put stores a cart and resets its TTL
func (s *RedisCartStore) Put(ctx context.Context, cart *shopping.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, s.key(cart.OwnerKey), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}

	return nil
}

// Delete removes a cart, typically after checkout
func (s *RedisCartStore) Delete(ctx context.Context, ownerKey string) error {
	if err := s.client.Del(ctx, s.key(ownerKey)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

var _ shopping.CartStore = (*RedisCartStore)(nil)
