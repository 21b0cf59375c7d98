package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/pantryscan/inventory-service/internal/database"
)

// redisKV adapts a Redis connection to the durable key-value store contract.
type redisKV struct {
	db *database.RedisDB
}

// NewRedisKV creates a Redis-backed key-value store
func NewRedisKV(db *database.RedisDB) *redisKV {
	return &redisKV{db: db}
}

// Get retrieves the value stored under key; found is false for a missing key
func (s *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.db.Get(ctx, key)
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "failed to get key %q", key)
	}
	return value, true, nil
}

// Set stores value under key
func (s *redisKV) Set(ctx context.Context, key, value string) error {
	if err := s.db.Set(ctx, key, value); err != nil {
		return errors.Wrapf(err, "failed to set key %q", key)
	}
	return nil
}
