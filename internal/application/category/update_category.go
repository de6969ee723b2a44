package category

import (
	"context"

	appdashboard "github.com/xiebiao/bookstore-admin/internal/application/dashboard"
	"github.com/xiebiao/bookstore-admin/internal/domain/category"
	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
)

// UpdateCategoryUseCase 修改分类
type UpdateCategoryUseCase struct {
	categoryRepo category.Repository
	stats        dashboard.StatsInvalidator
}

// NewUpdateCategoryUseCase 创建修改分类用例
func NewUpdateCategoryUseCase(categoryRepo category.Repository, stats dashboard.StatsInvalidator) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryRepo: categoryRepo, stats: stats}
}

// Execute 不存在返回404，名称与其他分类重复返回409
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, id uint, req CategoryRequest) (*CategoryResponse, error) {
	c, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Update(req.Name, req.Description)
	if err := uc.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	appdashboard.InvalidateStats(ctx, uc.stats)

	resp := newCategoryResponse(c)
	return &resp, nil
}
