package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/surgiflow/surgiflow/internal/shared"
)

const keyPrefix = "surgiflow"

// Redis persists collection blobs as plain Redis string values.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an existing Redis client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func redisKey(collection string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, collection)
}

// Read implements Backend.
func (s *Redis) Read(ctx context.Context, collection string) ([]byte, error) {
	blob, err := s.client.Get(ctx, redisKey(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", shared.ErrStore, collection, err)
	}
	return blob, nil
}

// Write implements Backend.
func (s *Redis) Write(ctx context.Context, collection string, blob []byte) error {
	if err := s.client.Set(ctx, redisKey(collection), blob, 0).Err(); err != nil {
		return fmt.Errorf("%w: write %s: %v", shared.ErrStore, collection, err)
	}
	return nil
}
