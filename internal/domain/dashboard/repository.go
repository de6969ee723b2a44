package dashboard

import (
	"context"
	"time"
)

// 各统计项的条数
const (
	TopBooksLimit     = 10
	RecentOrdersLimit = 10
	LowStockLimit     = 10
	LowStockThreshold = 5
	TopCustomersLimit = 10
	WindowMonths      = 12
)

// Repository 只读聚合查询
type Repository interface {
	Overview(ctx context.Context) (Overview, error)
	MonthlySales(ctx context.Context, since time.Time) ([]MonthlySales, error)
	OrderStatusDistribution(ctx context.Context) ([]StatusCount, error)
	CategoryDistribution(ctx context.Context) ([]CategoryCount, error)
	TopBooks(ctx context.Context, limit int) ([]TopBook, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
	LowStockBooks(ctx context.Context, threshold, limit int) ([]LowStockBook, error)

	SalesTrends(ctx context.Context, period Period, since time.Time, limit int) ([]TrendPoint, error)

	RegistrationTrends(ctx context.Context, since time.Time) ([]Registration, error)
	TopCustomers(ctx context.Context, limit int) ([]TopCustomer, error)
	// CustomerOrderCounts 每个customer的非取消订单数（无订单的为0）
	CustomerOrderCounts(ctx context.Context) ([]int64, error)
}

// Cache 统计结果缓存，未命中返回ok=false
type Cache interface {
	GetStats(ctx context.Context) (*Stats, bool, error)
	SetStats(ctx context.Context, stats *Stats, ttl time.Duration) error
	StatsInvalidator
}

// StatsInvalidator 图书、分类、订单变化后删除统计缓存
type StatsInvalidator interface {
	Invalidate(ctx context.Context) error
}
