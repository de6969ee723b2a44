package book

import (
	"context"
)

// Repository 图书仓储接口
type Repository interface {
	// Create 创建图书并写入作者/分类关联（批量插入），ISBN冲突返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book, authorIDs, categoryIDs []uint) error

	// FindByID 查询图书详情（含出版社、作者、分类、评分聚合），不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书字段；authorIDs/categoryIDs非nil时整体替换关联
	Update(ctx context.Context, book *Book, authorIDs, categoryIDs *[]uint) error

	// Delete 软删除图书并移除作者/分类关联，不存在返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// List 分页查询
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询（SELECT ... FOR UPDATE），必须在事务内调用
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock 原子更新库存，delta为负时要求扣减后库存>=0，否则返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) error

	// RestoreStock 归还库存（取消订单），已软删除的图书同样归还
	RestoreStock(ctx context.Context, id uint, qty int) error

	// RecentReviews 最近的评价（含评价人姓名）
	RecentReviews(ctx context.Context, bookID uint, limit int) ([]*Review, error)

	// CreateReview 新增评价
	CreateReview(ctx context.Context, review *Review) error
}

// AuthorRepository 作者仓储
type AuthorRepository interface {
	List(ctx context.Context) ([]*Author, error)
	Create(ctx context.Context, author *Author) error
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
}

// PublisherRepository 出版社仓储
type PublisherRepository interface {
	List(ctx context.Context) ([]*Publisher, error)
	// Create 名称冲突返回ErrPublisherDuplicate
	Create(ctx context.Context, publisher *Publisher) error
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
}

// IDCounter 统计给定ID中实际存在的记录数，用于校验外键引用
type IDCounter interface {
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
}
