package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
)

// 需要真实Redis：BOOKSTORE_TEST_REDIS=localhost:6379
func newTestClient(t *testing.T) *redis.Client {
	addr := os.Getenv("BOOKSTORE_TEST_REDIS")
	if addr == "" {
		t.Skip("BOOKSTORE_TEST_REDIS not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		_ = client.Close()
	})
	return client
}

func TestBlacklistKey(t *testing.T) {
	assert.Equal(t, "blacklist:abc.def", blacklistKey("abc.def"))
}

func TestTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	bl := NewTokenBlacklist(newTestClient(t))

	ok, err := bl.Contains(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, bl.Add(ctx, "t1", time.Minute))
	ok, err = bl.Contains(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, bl.Add(ctx, "expired", 0))
	ok, err = bl.Contains(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDashboardCache(t *testing.T) {
	ctx := context.Background()
	cache := NewDashboardCache(newTestClient(t))

	_, hit, err := cache.GetStats(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	stats := &dashboard.Stats{Overview: dashboard.Overview{TotalBooks: 3, TotalRevenue: decimal.RequireFromString("12.50")}}
	require.NoError(t, cache.SetStats(ctx, stats, time.Minute))

	got, hit, err := cache.GetStats(ctx)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, int64(3), got.Overview.TotalBooks)
	assert.True(t, stats.Overview.TotalRevenue.Equal(got.Overview.TotalRevenue))

	require.NoError(t, cache.Invalidate(ctx))
	_, hit, err = cache.GetStats(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
}
