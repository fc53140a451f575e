// Package cache provides Redis-backed caching for derived read models.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appanalytics "github.com/invoicedash/backend/internal/application/analytics"
	"github.com/invoicedash/backend/internal/infrastructure/config"
)

// Ensure RedisDashboardCache implements DashboardCache
var _ appanalytics.DashboardCache = (*RedisDashboardCache)(nil)

// RedisDashboardCache memoizes composed dashboards in Redis. It is
// suitable for distributed deployments where multiple instances serve
// the same snapshot.
type RedisDashboardCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisDashboardCache creates a new Redis-backed dashboard cache
func NewRedisDashboardCache(cfg *config.RedisConfig) (*RedisDashboardCache, error) {
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

	return &RedisDashboardCache{
		client:    client,
		keyPrefix: "analytics:",
	}, nil
}

// NewRedisDashboardCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisDashboardCacheWithClient(client *redis.Client, keyPrefix string) *RedisDashboardCache {
	if keyPrefix == "" {
		keyPrefix = "analytics:"
	}
	return &RedisDashboardCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached dashboard for the key, or (nil, nil) on a miss
func (c *RedisDashboardCache) Get(ctx context.Context, key string) (*appanalytics.Dashboard, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached dashboard: %w", err)
	}

	var dashboard appanalytics.Dashboard
	if err := json.Unmarshal(data, &dashboard); err != nil {
		// A corrupt entry behaves like a miss; it will be overwritten.
		return nil, nil
	}
	return &dashboard, nil
}

// Set stores the dashboard under the key with the given TTL
func (c *RedisDashboardCache) Set(ctx context.Context, key string, dashboard *appanalytics.Dashboard, ttl time.Duration) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cached dashboard: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisDashboardCache) Close() error {
	return c.client.Close()
}
