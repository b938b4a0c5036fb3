package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sheeto/backend/internal/domain/cart"
	"github.com/sheeto/backend/internal/infrastructure/config"
)

const cartKeyPrefix = "cart:"

// RedisCartStore implements cart.Store backed by Redis. Carts are stored as
// JSON under cart:<sessionID> with a sliding TTL refreshed on every save.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCartStore creates a cart store with its own Redis connection
func NewRedisCartStore(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCartStoreWithClient(client, ttl, logger), nil
}

// NewRedisCartStoreWithClient creates a cart store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisCartStoreWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCartStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Load fetches the cart stored for the session. A missing key yields an
// empty cart. So does a cart that no longer parses; the stale payload is
// dropped and the customer starts over rather than seeing an error.
func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	key := cartKeyPrefix + sessionID

	payload, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.New(sessionID), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		s.logger.Warn("Discarding unparseable cart payload",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
			s.logger.Warn("Failed to delete unparseable cart", zap.Error(delErr))
		}
		return cart.New(sessionID), nil
	}

	c.SessionID = sessionID
	if c.Items == nil {
		c.Items = make([]cart.Item, 0)
	}
	return &c, nil
}

// Save stores the cart and refreshes its TTL
func (s *RedisCartStore) Save(ctx context.Context, c *cart.Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKeyPrefix+c.SessionID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the cart stored for the session
func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

var _ cart.Store = (*RedisCartStore)(nil)
