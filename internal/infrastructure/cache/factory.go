package cache

import (
	"fmt"

	"go.uber.org/zap"

	appanalytics "github.com/invoicedash/backend/internal/application/analytics"
	"github.com/invoicedash/backend/internal/infrastructure/config"
)

// DashboardCacheFactory creates dashboard caches based on configuration
type DashboardCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// DashboardCacheFactoryOption is a functional option for configuring the factory
type DashboardCacheFactoryOption func(*DashboardCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) DashboardCacheFactoryOption {
	return func(f *DashboardCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) DashboardCacheFactoryOption {
	return func(f *DashboardCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewDashboardCacheFactory creates a new factory
func NewDashboardCacheFactory(cfg config.RedisConfig, opts ...DashboardCacheFactoryOption) *DashboardCacheFactory {
	f := &DashboardCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed dashboard cache
func (f *DashboardCacheFactory) CreateRedisCache() (appanalytics.DashboardCache, error) {
	cache, err := NewRedisDashboardCache(&f.redisConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis dashboard cache: %w", err)
	}
	return cache, nil
}

// CreateInMemoryCache creates an in-memory dashboard cache.
// In-memory caches do not share state across process instances, so each
// instance recomputes its own dashboards in distributed deployments.
func (f *DashboardCacheFactory) CreateInMemoryCache() appanalytics.DashboardCache {
	return NewInMemoryDashboardCache()
}

// CreateCache creates a dashboard cache based on whether Redis is available.
// It tries Redis first, and falls back to in-memory if Redis is not available
// and AllowInMemoryFallback is true.
func (f *DashboardCacheFactory) CreateCache() (appanalytics.DashboardCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis dashboard cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for dashboard cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory dashboard cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
