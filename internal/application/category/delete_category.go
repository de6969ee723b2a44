package category

import (
	"context"

	appdashboard "github.com/xiebiao/bookstore-admin/internal/application/dashboard"
	"github.com/xiebiao/bookstore-admin/internal/domain/category"
	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
)

// DeleteCategoryUseCase 删除分类
// 仍有图书关联时拒绝删除，避免图书丢失分类信息
type DeleteCategoryUseCase struct {
	categoryRepo category.Repository
	stats        dashboard.StatsInvalidator
}

// NewDeleteCategoryUseCase 创建删除分类用例
func NewDeleteCategoryUseCase(categoryRepo category.Repository, stats dashboard.StatsInvalidator) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryRepo: categoryRepo, stats: stats}
}

func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, id uint) error {
	if _, err := uc.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	n, err := uc.categoryRepo.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return category.ErrCategoryInUse
	}

	if err := uc.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	appdashboard.InvalidateStats(ctx, uc.stats)
	return nil
}
