package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pantryscan/inventory-service/pkg/metrics"
)

// RedisDB wraps redis.Client with pooling, health checks and command metrics.
// It backs the durable key-value store the inventory collection persists to.
type RedisDB struct {
	client  *redis.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRedisDB creates a new Redis client
func NewRedisDB(redisURL string, maxConns int, logger *slog.Logger, metricsCollector *metrics.Metrics) (*RedisDB, error) {
	// Parse Redis URL
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Configure connection pool
	opt.PoolSize = maxConns
	opt.MinIdleConns = 1
	opt.MaxIdleConns = maxConns / 2
	opt.ConnMaxLifetime = time.Hour
	opt.ConnMaxIdleTime = time.Minute * 30
	opt.PoolTimeout = time.Second * 30
	opt.ReadTimeout = time.Second * 10
	opt.WriteTimeout = time.Second * 10

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	rdb := &RedisDB{
		client:  client,
		logger:  logger,
		metrics: metricsCollector,
	}

	if metricsCollector != nil {
		metricsCollector.RedisConnections.Set(float64(maxConns))
		metricsCollector.UpdateDependencyHealth("redis", true)
	}

	logger.Info("Redis connection established",
		"max_conns", maxConns,
		"addr", opt.Addr,
		"db", opt.DB,
	)

	return rdb, nil
}

// Client returns the underlying redis.Client
func (r *RedisDB) Client() *redis.Client {
	return r.client
}

// Health checks the health of the Redis connection
func (r *RedisDB) Health(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		if r.metrics != nil {
			r.metrics.UpdateDependencyHealth("redis", false)
		}
		return fmt.Errorf("redis health check failed: %w", err)
	}

	if r.metrics != nil {
		r.metrics.UpdateDependencyHealth("redis", true)

		stats := r.client.PoolStats()
		r.metrics.RedisConnections.Set(float64(stats.TotalConns))
	}

	return nil
}

// Close closes the Redis client
func (r *RedisDB) Close() error {
	if r.client == nil {
		return nil
	}

	err := r.client.Close()

	if r.logger != nil {
		r.logger.Info("Redis connection closed")
	}

	if r.metrics != nil {
		r.metrics.RedisConnections.Set(0)
		r.metrics.UpdateDependencyHealth("redis", false)
	}

	if err != nil {
		return fmt.Errorf("failed to close redis: %w", err)
	}

	return nil
}

// Get retrieves the value stored under key. A missing key is reported as
// redis.Nil, which callers translate to "absent".
func (r *RedisDB) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	defer func() {
		if r.metrics != nil {
			r.metrics.StorageCommandDuration.WithLabelValues("redis", "get").Observe(time.Since(start).Seconds())
		}
	}()

	value, err := r.client.Get(ctx, key).Result()

	if r.metrics != nil {
		status := "success"
		if err != nil && err != redis.Nil {
			status = "error"
		}
		r.metrics.StorageCommandsTotal.WithLabelValues("redis", "get", status).Inc()
	}

	return value, err
}

// Set stores value under key without expiration
func (r *RedisDB) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	defer func() {
		if r.metrics != nil {
			r.metrics.StorageCommandDuration.WithLabelValues("redis", "set").Observe(time.Since(start).Seconds())
		}
	}()

	err := r.client.Set(ctx, key, value, 0).Err()

	if r.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		r.metrics.StorageCommandsTotal.WithLabelValues("redis", "set", status).Inc()
	}

	return err
}
