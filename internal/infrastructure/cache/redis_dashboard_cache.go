package cache

import (
	"context"
	"encoding/json"
	"time"

	appreport "github.com/gestock/backend/internal/application/report"
	"github.com/gestock/backend/internal/domain/report"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisDashboardCache caches computed dashboards in Redis. Cache failures
// are logged and treated as misses, never surfaced to callers.
type RedisDashboardCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisDashboardCache creates a dashboard cache backed by an existing client
func NewRedisDashboardCache(client *redis.Client, logger *zap.Logger) *RedisDashboardCache {
	return &RedisDashboardCache{
		client:    client,
		keyPrefix: "report:",
		logger:    logger,
	}
}

// Get returns the cached dashboard for a key, or false on a miss
func (c *RedisDashboardCache) Get(ctx context.Context, key string) (*report.Dashboard, bool) {
	payload, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var dashboard report.Dashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		c.logger.Warn("dashboard cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &dashboard, true
}

// Set stores a dashboard under a key with a TTL
func (c *RedisDashboardCache) Set(ctx context.Context, key string, dashboard *report.Dashboard, ttl time.Duration) {
	payload, err := json.Marshal(dashboard)
	if err != nil {
		c.logger.Warn("dashboard cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, payload, ttl).Err(); err != nil {
		c.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

var _ appreport.DashboardCache = (*RedisDashboardCache)(nil)
