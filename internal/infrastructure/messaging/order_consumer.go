package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/domain/order"
)

// OrderEventRoutingKeys 订单事件消费者绑定的路由键
var OrderEventRoutingKeys = []string{"order.*"}

// statsInvalidator 由redis.DashboardCache实现
type statsInvalidator interface {
	Invalidate(ctx context.Context) error
}

// OrderEventHandler 订单事件消费逻辑
// 订单创建、取消、状态变化都会影响仪表盘统计，收到事件后删除统计缓存
type OrderEventHandler struct {
	cache statsInvalidator
	log   *zap.Logger
}

// NewOrderEventHandler 创建订单事件处理器
func NewOrderEventHandler(cache statsInvalidator, log *zap.Logger) *OrderEventHandler {
	return &OrderEventHandler{cache: cache, log: log}
}

// Handle 处理一条消息，返回error时消息重新入队
// 无法解析的消息直接丢弃，避免反复重投
func (h *OrderEventHandler) Handle(ctx context.Context, routingKey string, body []byte) error {
	var event order.Event
	if err := json.Unmarshal(body, &event); err != nil {
		h.log.Warn("drop malformed order event", zap.String("routing_key", routingKey), zap.Error(err))
		return nil
	}
	return h.HandleEvent(ctx, event)
}

// HandleEvent 处理已解码的订单事件，消息队列消费与进程内发布共用
func (h *OrderEventHandler) HandleEvent(ctx context.Context, event order.Event) error {
	switch event.Type {
	case order.EventCreated, order.EventCancelled, order.EventStatusChanged:
	default:
		h.log.Debug("ignore order event", zap.String("type", event.Type))
		return nil
	}

	if err := h.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate dashboard stats: %w", err)
	}

	h.log.Info("order event consumed",
		zap.String("type", event.Type),
		zap.Uint("order_id", event.OrderID),
		zap.String("order_no", event.OrderNo),
		zap.String("status", string(event.Status)),
	)
	return nil
}
