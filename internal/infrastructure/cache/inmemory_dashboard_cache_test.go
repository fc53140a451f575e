package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/invoicedash/backend/internal/application/analytics"
	"github.com/invoicedash/backend/internal/infrastructure/config"
)

func testDashboard(score int) *appanalytics.Dashboard {
	return &appanalytics.Dashboard{
		PaymentScore: score,
	}
}

func TestInMemoryDashboardCache_Get(t *testing.T) {
	cache := NewInMemoryDashboardCache()
	defer cache.Close()

	ctx := context.Background()

	t.Run("returns nil for unknown key", func(t *testing.T) {
		dashboard, err := cache.Get(ctx, "dashboard:unknown")
		require.NoError(t, err)
		assert.Nil(t, dashboard)
	})

	t.Run("returns stored dashboard", func(t *testing.T) {
		err := cache.Set(ctx, "dashboard:a", testDashboard(75), 1*time.Hour)
		require.NoError(t, err)

		dashboard, err := cache.Get(ctx, "dashboard:a")
		require.NoError(t, err)
		require.NotNil(t, dashboard)
		assert.Equal(t, 75, dashboard.PaymentScore)
	})

	t.Run("returns nil for expired entry", func(t *testing.T) {
		err := cache.Set(ctx, "dashboard:short", testDashboard(40), 10*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		dashboard, err := cache.Get(ctx, "dashboard:short")
		require.NoError(t, err)
		assert.Nil(t, dashboard, "expired entry should behave like a miss")
	})

	t.Run("returns a copy of the cached value", func(t *testing.T) {
		err := cache.Set(ctx, "dashboard:copy", testDashboard(60), 1*time.Hour)
		require.NoError(t, err)

		first, err := cache.Get(ctx, "dashboard:copy")
		require.NoError(t, err)
		first.PaymentScore = 0

		second, err := cache.Get(ctx, "dashboard:copy")
		require.NoError(t, err)
		assert.Equal(t, 60, second.PaymentScore, "mutating a returned dashboard should not affect the cache")
	})
}

func TestInMemoryDashboardCache_Set(t *testing.T) {
	cache := NewInMemoryDashboardCache()
	defer cache.Close()

	ctx := context.Background()

	t.Run("overwrites existing entry", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "dashboard:a", testDashboard(10), 1*time.Hour))
		require.NoError(t, cache.Set(ctx, "dashboard:a", testDashboard(90), 1*time.Hour))

		dashboard, err := cache.Get(ctx, "dashboard:a")
		require.NoError(t, err)
		require.NotNil(t, dashboard)
		assert.Equal(t, 90, dashboard.PaymentScore)
	})

	t.Run("tracks entry count", func(t *testing.T) {
		cache := NewInMemoryDashboardCache()
		defer cache.Close()

		require.NoError(t, cache.Set(ctx, "k1", testDashboard(1), 1*time.Hour))
		require.NoError(t, cache.Set(ctx, "k2", testDashboard(2), 1*time.Hour))
		assert.Equal(t, 2, cache.Size())
	})
}

func TestInMemoryDashboardCache_Cleanup(t *testing.T) {
	cache := NewInMemoryDashboardCache()
	defer cache.Close()

	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "expired", testDashboard(1), 1*time.Millisecond))
	require.NoError(t, cache.Set(ctx, "live", testDashboard(2), 1*time.Hour))

	time.Sleep(10 * time.Millisecond)
	cache.cleanup()

	assert.Equal(t, 1, cache.Size())

	dashboard, err := cache.Get(ctx, "live")
	require.NoError(t, err)
	assert.NotNil(t, dashboard)
}

func TestInMemoryDashboardCache_Close(t *testing.T) {
	cache := NewInMemoryDashboardCache()

	require.NoError(t, cache.Close())
	// Safe to call multiple times
	require.NoError(t, cache.Close())
}

func TestDashboardCacheFactory_CreateInMemoryCache(t *testing.T) {
	factory := NewDashboardCacheFactory(config.RedisConfig{Host: "localhost", Port: 6379}, WithInMemoryFallback(true))

	cache := factory.CreateInMemoryCache()
	require.NotNil(t, cache)

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "k", testDashboard(5), 1*time.Hour))

	dashboard, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, dashboard)
	assert.Equal(t, 5, dashboard.PaymentScore)
}
