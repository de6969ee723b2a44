package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
)

// GetStatsUseCase 仪表盘汇总统计
// 1. 先读Redis缓存，命中直接返回
// 2. 缓存读写失败只记日志，回退到数据库查询
type GetStatsUseCase struct {
	repo  dashboard.Repository
	cache dashboard.Cache
	ttl   time.Duration
	log   *zap.Logger
	now   func() time.Time
}

// NewGetStatsUseCase 创建统计用例，ttl<=0时不写缓存
func NewGetStatsUseCase(repo dashboard.Repository, cache dashboard.Cache, ttl time.Duration, log *zap.Logger) *GetStatsUseCase {
	return &GetStatsUseCase{repo: repo, cache: cache, ttl: ttl, log: log, now: time.Now}
}

func (uc *GetStatsUseCase) Execute(ctx context.Context) (*dashboard.Stats, error) {
	if stats, ok, err := uc.cache.GetStats(ctx); err != nil {
		uc.log.Warn("read dashboard cache failed", zap.Error(err))
	} else if ok {
		return stats, nil
	}

	stats, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	if uc.ttl > 0 {
		if err := uc.cache.SetStats(ctx, stats, uc.ttl); err != nil {
			uc.log.Warn("write dashboard cache failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (uc *GetStatsUseCase) load(ctx context.Context) (*dashboard.Stats, error) {
	var (
		stats dashboard.Stats
		err   error
	)

	if stats.Overview, err = uc.repo.Overview(ctx); err != nil {
		return nil, err
	}
	since := uc.now().AddDate(0, -dashboard.WindowMonths, 0)
	if stats.MonthlySales, err = uc.repo.MonthlySales(ctx, since); err != nil {
		return nil, err
	}
	if stats.OrderStatus, err = uc.repo.OrderStatusDistribution(ctx); err != nil {
		return nil, err
	}
	if stats.CategoryDistribution, err = uc.repo.CategoryDistribution(ctx); err != nil {
		return nil, err
	}
	if stats.TopBooks, err = uc.repo.TopBooks(ctx, dashboard.TopBooksLimit); err != nil {
		return nil, err
	}
	if stats.RecentOrders, err = uc.repo.RecentOrders(ctx, dashboard.RecentOrdersLimit); err != nil {
		return nil, err
	}
	if stats.LowStockBooks, err = uc.repo.LowStockBooks(ctx, dashboard.LowStockThreshold, dashboard.LowStockLimit); err != nil {
		return nil, err
	}
	return &stats, nil
}

// InvalidateStats 写操作成功后删除统计缓存
// 删除失败只记日志，缓存最迟在TTL后过期
func InvalidateStats(ctx context.Context, stats dashboard.StatsInvalidator) {
	if err := stats.Invalidate(ctx); err != nil {
		logger.WithContext(ctx).Warn("invalidate dashboard stats failed", zap.Error(err))
	}
}
