package dashboard

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
)

// CustomerAnalyticsUseCase 客户分析：注册趋势、消费排行、活跃度分布
type CustomerAnalyticsUseCase struct {
	repo dashboard.Repository
	now  func() time.Time
}

// NewCustomerAnalyticsUseCase 创建客户分析用例
func NewCustomerAnalyticsUseCase(repo dashboard.Repository) *CustomerAnalyticsUseCase {
	return &CustomerAnalyticsUseCase{repo: repo, now: time.Now}
}

func (uc *CustomerAnalyticsUseCase) Execute(ctx context.Context) (*dashboard.CustomerAnalytics, error) {
	registrations, err := uc.repo.RegistrationTrends(ctx, uc.now().AddDate(0, -dashboard.WindowMonths, 0))
	if err != nil {
		return nil, err
	}

	top, err := uc.repo.TopCustomers(ctx, dashboard.TopCustomersLimit)
	if err != nil {
		return nil, err
	}

	counts, err := uc.repo.CustomerOrderCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &dashboard.CustomerAnalytics{
		RegistrationTrends:   registrations,
		TopCustomers:         top,
		ActivityDistribution: dashboard.BucketActivity(counts),
	}, nil
}
