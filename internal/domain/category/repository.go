package category

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	// List 按名称排序，附带每个分类的图书数量
	List(ctx context.Context) ([]*Category, error)

	// FindByID 不存在返回ErrCategoryNotFound
	FindByID(ctx context.Context, id uint) (*Category, error)

	// Create 名称冲突返回ErrCategoryDuplicate
	Create(ctx context.Context, c *Category) error

	// Update 名称冲突返回ErrCategoryDuplicate
	Update(ctx context.Context, c *Category) error

	// Delete 物理删除
	Delete(ctx context.Context, id uint) error

	// CountBooks 引用该分类的图书数量
	CountBooks(ctx context.Context, id uint) (int64, error)

	// RecentBooks 该分类下最新的图书
	RecentBooks(ctx context.Context, id uint, limit int) ([]*BookSummary, error)

	// CountByIDs 统计给定ID中实际存在的分类数
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
}
