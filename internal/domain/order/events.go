package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 订单事件路由键
const (
	EventCreated       = "order.created"
	EventCancelled     = "order.cancelled"
	EventStatusChanged = "order.status_changed"
)

// Event 订单领域事件，在事务提交后发布
type Event struct {
	Type        string          `json:"type"`
	OrderID     uint            `json:"order_id"`
	OrderNo     string          `json:"order_no"`
	UserID      uint            `json:"user_id"`
	Status      Status          `json:"status"`
	PrevStatus  Status          `json:"prev_status,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// NewEvent 根据订单当前状态构造事件
func NewEvent(typ string, o *Order, prev Status) Event {
	return Event{
		Type:        typ,
		OrderID:     o.ID,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		Status:      o.Status,
		PrevStatus:  prev,
		TotalAmount: o.TotalAmount,
		OccurredAt:  time.Now(),
	}
}

// EventPublisher 事件发布接口，发布失败不影响已提交的事务
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
