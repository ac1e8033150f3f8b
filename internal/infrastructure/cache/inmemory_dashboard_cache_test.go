package cache

import (
	"context"
	"testing"
	"time"

	"github.com/gestock/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDashboardCache_SetGet(t *testing.T) {
	cache := NewInMemoryDashboardCache()
	ctx := context.Background()

	dashboard := &report.Dashboard{
		Revenue: report.PeriodComparison{
			Current:  decimal.NewFromInt(100000),
			Previous: decimal.NewFromInt(80000),
		},
	}

	cache.Set(ctx, "dashboard:20260801:20260828", dashboard, time.Minute)

	got, ok := cache.Get(ctx, "dashboard:20260801:20260828")
	require.True(t, ok)
	assert.True(t, got.Revenue.Current.Equal(decimal.NewFromInt(100000)))
}

func TestInMemoryDashboardCache_Miss(t *testing.T) {
	cache := NewInMemoryDashboardCache()

	_, ok := cache.Get(context.Background(), "missing")
	assert.False(t, ok)
}

func TestInMemoryDashboardCache_Expiry(t *testing.T) {
	cache := NewInMemoryDashboardCache()
	ctx := context.Background()

	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Set(ctx, "key", &report.Dashboard{}, time.Minute)

	_, ok := cache.Get(ctx, "key")
	require.True(t, ok)

	// Advance past the TTL
	current = current.Add(2 * time.Minute)

	_, ok = cache.Get(ctx, "key")
	assert.False(t, ok)
}
