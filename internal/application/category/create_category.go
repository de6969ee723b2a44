package category

import (
	"context"

	appdashboard "github.com/xiebiao/bookstore-admin/internal/application/dashboard"
	"github.com/xiebiao/bookstore-admin/internal/domain/category"
	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
)

// CreateCategoryUseCase 新增分类，名称重复返回409
type CreateCategoryUseCase struct {
	categoryRepo category.Repository
	stats        dashboard.StatsInvalidator
}

// NewCreateCategoryUseCase 创建新增分类用例
func NewCreateCategoryUseCase(categoryRepo category.Repository, stats dashboard.StatsInvalidator) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo, stats: stats}
}

// CategoryRequest 新增/修改分类请求
type CategoryRequest struct {
	Name        string
	Description string
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	c := category.NewCategory(req.Name, req.Description)
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	appdashboard.InvalidateStats(ctx, uc.stats)
	resp := newCategoryResponse(c)
	return &resp, nil
}
