package order

import (
	"context"
)

// Repository 订单仓储接口
// 写操作通过context中的事务执行（见rdb.TxManager）
type Repository interface {
	// Create 批量写入订单头与明细
	Create(ctx context.Context, order *Order) error

	// FindByID 订单详情（含明细、图书标题、下单用户），不存在返回ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// LockByID 悲观锁读取订单头及明细（SELECT ... FOR UPDATE），必须在事务内调用
	LockByID(ctx context.Context, id uint) (*Order, error)

	// UpdateStatus 更新订单状态
	UpdateStatus(ctx context.Context, id uint, status Status) error

	// List 分页查询（含下单用户与明细数量）
	List(ctx context.Context, params ListParams) ([]*Order, int64, error)
}

// ListParams 订单列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Status   *Status
	UserID   *uint // nil表示不过滤（仅管理员）
}

// Normalize 补默认分页参数
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset 分页偏移量
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
