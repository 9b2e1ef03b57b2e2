package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const processingPlaceholder = "processing"

// IdempotencyStore implements usecase.IdempotencyStore using Redis. It keeps
// a duplicate transfer request from debiting the sender twice.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "idempotency:",
	}
}

// CheckAndSet atomically checks if key exists, sets if not.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	if response == nil {
		response = []byte(processingPlaceholder)
	}

	set, err := s.client.SetNX(ctx, fullKey, response, ttl).Result()
	if err != nil {
		return false, nil, err
	}

	if set {
		return false, nil, nil
	}

	// Another request got there first.
	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err != nil && err != redis.Nil {
		return false, nil, err
	}

	return true, existing, nil
}

// Update updates an existing idempotency key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}
