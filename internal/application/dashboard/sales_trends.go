package dashboard

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
)

// 销售趋势默认/最大周期数
const (
	DefaultTrendLimit = 12
	MaxTrendLimit     = 365
)

// SalesTrendsUseCase 按日/周/月/年统计销售趋势
type SalesTrendsUseCase struct {
	repo dashboard.Repository
	now  func() time.Time
}

// NewSalesTrendsUseCase 创建销售趋势用例
func NewSalesTrendsUseCase(repo dashboard.Repository) *SalesTrendsUseCase {
	return &SalesTrendsUseCase{repo: repo, now: time.Now}
}

// SalesTrendsRequest period非法时回退到month
type SalesTrendsRequest struct {
	Period string
	Limit  int
}

// SalesTrendsResponse 销售趋势
type SalesTrendsResponse struct {
	Period string                 `json:"period"`
	Trends []dashboard.TrendPoint `json:"trends"`
}

func (uc *SalesTrendsUseCase) Execute(ctx context.Context, req SalesTrendsRequest) (*SalesTrendsResponse, error) {
	period := dashboard.ParsePeriod(req.Period)
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultTrendLimit
	}
	if limit > MaxTrendLimit {
		limit = MaxTrendLimit
	}

	trends, err := uc.repo.SalesTrends(ctx, period, period.Since(uc.now(), limit), limit)
	if err != nil {
		return nil, err
	}
	if trends == nil {
		trends = []dashboard.TrendPoint{}
	}
	return &SalesTrendsResponse{Period: string(period), Trends: trends}, nil
}
