package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

const dashboardStatsKey = "dashboard:stats"

// DashboardCache 仪表盘统计缓存，值为JSON
type DashboardCache struct {
	client *redis.Client
}

// NewDashboardCache 创建仪表盘缓存
func NewDashboardCache(client *redis.Client) *DashboardCache {
	return &DashboardCache{client: client}
}

// GetStats 未命中返回ok=false
func (c *DashboardCache) GetStats(ctx context.Context) (*dashboard.Stats, bool, error) {
	raw, err := c.client.Get(ctx, dashboardStatsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.ErrRedisError.WithErr(err)
	}

	var stats dashboard.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, apperrors.ErrRedisError.WithErr(err)
	}
	return &stats, true, nil
}

func (c *DashboardCache) SetStats(ctx context.Context, stats *dashboard.Stats, ttl time.Duration) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return apperrors.ErrRedisError.WithErr(err)
	}
	if err := c.client.Set(ctx, dashboardStatsKey, raw, ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithErr(err)
	}
	return nil
}

// Invalidate 删除统计缓存，订单变化后由事件消费者调用
func (c *DashboardCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, dashboardStatsKey).Err(); err != nil {
		return apperrors.ErrRedisError.WithErr(err)
	}
	return nil
}

var _ dashboard.Cache = (*DashboardCache)(nil)
