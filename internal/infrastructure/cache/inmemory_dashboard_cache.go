package cache

import (
	"context"
	"sync"
	"time"

	appanalytics "github.com/invoicedash/backend/internal/application/analytics"
)

// entry represents a cached dashboard with expiration
type entry struct {
	dashboard appanalytics.Dashboard
	expiresAt time.Time
}

// InMemoryDashboardCache implements DashboardCache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryDashboardCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryDashboardCache creates a new in-memory dashboard cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryDashboardCache() *InMemoryDashboardCache {
	c := &InMemoryDashboardCache{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns the cached dashboard for the key, or (nil, nil) on a miss.
// Expired entries behave like misses.
func (c *InMemoryDashboardCache) Get(ctx context.Context, key string) (*appanalytics.Dashboard, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists {
		return nil, nil
	}
	if time.Now().After(e.expiresAt) {
		return nil, nil
	}

	// Copy so callers cannot mutate the cached value.
	dashboard := e.dashboard
	return &dashboard, nil
}

// Set stores the dashboard under the key with the given TTL
func (c *InMemoryDashboardCache) Set(ctx context.Context, key string, dashboard *appanalytics.Dashboard, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		dashboard: *dashboard,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (c *InMemoryDashboardCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryDashboardCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *InMemoryDashboardCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryDashboardCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryDashboardCache implements DashboardCache
var _ appanalytics.DashboardCache = (*InMemoryDashboardCache)(nil)
