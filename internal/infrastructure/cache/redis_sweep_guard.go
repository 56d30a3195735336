package cache

import (
	"context"
	"fmt"
	"time"

	finance "github.com/backoffice/backend/internal/application/finance"
	"github.com/backoffice/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisSweepGuard implements the sweep guard using Redis SETNX. It keeps
// concurrent deployments from running the same daily sweep twice: the first
// instance to set the key wins, everyone else skips.
type RedisSweepGuard struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSweepGuard creates a Redis-backed sweep guard
func NewRedisSweepGuard(cfg config.RedisConfig) (*RedisSweepGuard, error) {
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

	return &RedisSweepGuard{
		client:    client,
		keyPrefix: "sweep:lock:",
	}, nil
}

// NewRedisSweepGuardWithClient creates a guard with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisSweepGuardWithClient(client *redis.Client, keyPrefix string) *RedisSweepGuard {
	if keyPrefix == "" {
		keyPrefix = "sweep:lock:"
	}
	return &RedisSweepGuard{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// TryAcquire attempts to take the lock for the given key. Returns true if
// this caller owns the lock, false if another holder already has it.
func (g *RedisSweepGuard) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := g.client.SetNX(ctx, g.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire sweep lock: %w", err)
	}
	return acquired, nil
}

// Release drops the lock for the given key
func (g *RedisSweepGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release sweep lock: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (g *RedisSweepGuard) Close() error {
	return g.client.Close()
}

// Ensure RedisSweepGuard implements SweepGuard
var _ finance.SweepGuard = (*RedisSweepGuard)(nil)
