package rdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-admin/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// orderRepository 订单仓储实现
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单
// 1. 插入订单头（不级联关联）
// 2. 批量插入明细：INSERT INTO order_items (...) VALUES (...), (...)
// 调用方在TxManager.Transaction内调用，与库存扣减同属一个事务
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	m := toOrderModel(o)

	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return err
		}

		items := make([]OrderItemModel, len(o.Items))
		for i, it := range o.Items {
			items[i] = OrderItemModel{
				OrderID:   m.ID,
				BookID:    it.BookID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			}
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}

		for i := range items {
			o.Items[i].ID = items[i].ID
			o.Items[i].OrderID = m.ID
		}
		return nil
	})
	if err != nil {
		return apperrors.ErrDatabaseError.WithErr(err)
	}

	o.ID = m.ID
	o.CreatedAt, o.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

// FindByID 订单详情
// 明细关联的图书可能已被软删除，使用Unscoped仍能读到标题
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var m OrderModel
	err := r.getDB(ctx).
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Book", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&m, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}

	o := toOrderEntity(&m)
	o.ItemCount = int64(len(m.Items))
	return o, nil
}

// LockByID SELECT ... FOR UPDATE锁定订单头，再读取明细
// 并发取消同一订单时，后到的事务在此阻塞，读到的是已提交的cancelled状态
func (r *orderRepository) LockByID(ctx context.Context, id uint) (*order.Order, error) {
	db := r.getDB(ctx)

	var m OrderModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}

	if err := db.Where("order_id = ?", id).Order("id ASC").Find(&m.Items).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}

	return toOrderEntity(&m), nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status order.Status) error {
	result := r.getDB(ctx).Model(&OrderModel{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

type itemCountRow struct {
	OrderID   uint
	ItemCount int64
}

// List 分页查询订单，附带下单用户和明细数量
func (r *orderRepository) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	params.Normalize()
	db := r.getDB(ctx)

	query := db.Model(&OrderModel{})
	if params.Status != nil {
		query = query.Where("status = ?", string(*params.Status))
	}
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithErr(err)
	}
	if total == 0 {
		return []*order.Order{}, 0, nil
	}

	var models []OrderModel
	err := query.
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithErr(err)
	}

	ids := make([]uint, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}
	var counts []itemCountRow
	err = db.Model(&OrderItemModel{}).
		Select("order_id, COUNT(*) AS item_count").
		Where("order_id IN ?", ids).
		Group("order_id").
		Scan(&counts).Error
	if err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithErr(err)
	}
	countByOrder := make(map[uint]int64, len(counts))
	for _, c := range counts {
		countByOrder[c.OrderID] = c.ItemCount
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
		orders[i].ItemCount = countByOrder[models[i].ID]
	}
	return orders, total, nil
}

func (r *orderRepository) getDB(ctx context.Context) *gorm.DB {
	return txFromContext(ctx, r.db)
}

// =========================================
// 辅助函数：模型转换
// =========================================

func toOrderModel(o *order.Order) *OrderModel {
	return &OrderModel{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	o := &order.Order{
		ID:              m.ID,
		OrderNo:         m.OrderNo,
		UserID:          m.UserID,
		Status:          order.Status(m.Status),
		TotalAmount:     m.TotalAmount,
		ShippingAddress: m.ShippingAddress,
		Items:           make([]order.OrderItem, 0, len(m.Items)),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.User != nil {
		o.CustomerName = m.User.Name
		o.CustomerEmail = m.User.Email
	}
	for _, it := range m.Items {
		item := order.OrderItem{
			ID:        it.ID,
			OrderID:   it.OrderID,
			BookID:    it.BookID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
		if it.Book != nil {
			item.BookTitle = it.Book.Title
			if it.Book.ISBN != nil {
				item.BookISBN = *it.Book.ISBN
			}
		}
		o.Items = append(o.Items, item)
	}
	return o
}
