package book

import (
	"context"

	appdashboard "github.com/xiebiao/bookstore-admin/internal/application/dashboard"
	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
)

// DeleteBookUseCase 删除图书（软删除，同时移除作者/分类关联）
type DeleteBookUseCase struct {
	bookRepo book.Repository
	stats    dashboard.StatsInvalidator
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(bookRepo book.Repository, stats dashboard.StatsInvalidator) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookRepo: bookRepo, stats: stats}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.bookRepo.Delete(ctx, id); err != nil {
		return err
	}
	appdashboard.InvalidateStats(ctx, uc.stats)
	return nil
}
