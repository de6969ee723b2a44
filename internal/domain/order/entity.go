package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusCompleted  Status = "completed"
)

// AllStatuses 合法状态枚举（顺序即展示顺序）
var AllStatuses = []Status{
	StatusPending, StatusProcessing, StatusShipped,
	StatusDelivered, StatusCancelled, StatusCompleted,
}

// ParseStatus 非枚举值返回ErrInvalidStatus
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// Cancellable 只有待处理/处理中的订单可以取消
func (s Status) Cancellable() bool {
	return s == StatusPending || s == StatusProcessing
}

// Order 订单实体（聚合根）
// 1. TotalAmount在创建时由明细计算并冗余存储
// 2. CustomerName/CustomerEmail/ItemCount为查询时关联得到的只读字段
type Order struct {
	ID              uint
	OrderNo         string
	UserID          uint
	Status          Status
	TotalAmount     decimal.Decimal
	ShippingAddress string
	Items           []OrderItem
	CustomerName    string
	CustomerEmail   string
	ItemCount       int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem 订单明细
// UnitPrice是下单时的价格快照，之后图书改价不影响历史订单
type OrderItem struct {
	ID        uint
	OrderID   uint
	BookID    uint
	Quantity  int
	UnitPrice decimal.Decimal
	BookTitle string
	BookISBN  string
}

// Subtotal 小计 = 单价 × 数量
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder 创建待处理订单，总金额由明细计算
func NewOrder(orderNo string, userID uint, shippingAddress string, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	now := time.Now()
	o := &Order{
		OrderNo:         orderNo,
		UserID:          userID,
		Status:          StatusPending,
		ShippingAddress: shippingAddress,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o.TotalAmount = o.CalculateTotal()
	return o, nil
}

// CalculateTotal Σ(单价 × 数量)
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}

// CanTransitionTo 状态流转规则
// 1. 已取消为终态
// 2. 转为cancelled必须走Cancel（需要恢复库存）
// 3. 其余状态之间由管理员自由调整
func (o *Order) CanTransitionTo(target Status) bool {
	if o.Status == StatusCancelled {
		return false
	}
	if target == StatusCancelled {
		return o.Status.Cancellable()
	}
	return true
}

// TransitionTo 状态转换
func (o *Order) TransitionTo(target Status) error {
	if target == StatusCancelled {
		return o.Cancel()
	}
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition.WithMessage("Cannot change status of a %s order", o.Status)
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel 取消订单，调用方负责恢复库存
func (o *Order) Cancel() error {
	if !o.Status.Cancellable() {
		return ErrNotCancellable.WithMessage("Cannot cancel order with status: %s", o.Status)
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
