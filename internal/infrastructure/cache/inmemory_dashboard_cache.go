package cache

import (
	"context"
	"sync"
	"time"

	appreport "github.com/gestock/backend/internal/application/report"
	"github.com/gestock/backend/internal/domain/report"
)

// InMemoryDashboardCache is a process-local dashboard cache for deployments
// without Redis and for tests.
type InMemoryDashboardCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	now     func() time.Time
}

type inMemoryEntry struct {
	dashboard *report.Dashboard
	expiresAt time.Time
}

// NewInMemoryDashboardCache creates an empty in-memory dashboard cache
func NewInMemoryDashboardCache() *InMemoryDashboardCache {
	return &InMemoryDashboardCache{
		entries: make(map[string]inMemoryEntry),
		now:     time.Now,
	}
}

// Get returns the cached dashboard for a key, or false on a miss
func (c *InMemoryDashboardCache) Get(ctx context.Context, key string) (*report.Dashboard, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.dashboard, true
}

// Set stores a dashboard under a key with a TTL
func (c *InMemoryDashboardCache) Set(ctx context.Context, key string, dashboard *report.Dashboard, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemoryEntry{
		dashboard: dashboard,
		expiresAt: c.now().Add(ttl),
	}
}

var _ appreport.DashboardCache = (*InMemoryDashboardCache)(nil)
