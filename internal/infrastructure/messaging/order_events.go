package messaging

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/domain/order"
	"github.com/xiebiao/bookstore-admin/pkg/circuitbreaker"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
)

// publishTimeout 单次发布的超时时间，事件发布不能拖慢下单请求
const publishTimeout = 3 * time.Second

// messagePublisher 由mq.Publisher实现
type messagePublisher interface {
	Exchange() string
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// OrderEventPublisher 订单事件发布
// 1. 事件以Event.Type作为路由键
// 2. 经熔断器调用，RabbitMQ不可用时快速失败
type OrderEventPublisher struct {
	publisher messagePublisher
	breaker   *circuitbreaker.CircuitBreaker
}

// NewOrderEventPublisher 创建订单事件发布者，熔断器状态同步到Prometheus
func NewOrderEventPublisher(publisher messagePublisher, log *zap.Logger) *OrderEventPublisher {
	cfg := circuitbreaker.DefaultConfig()
	cfg.OnStateChange = func(name string, from, to circuitbreaker.State) {
		metrics.SetCircuitBreakerState(name, int(to))
		log.Warn("circuit breaker state changed",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}

	return &OrderEventPublisher{
		publisher: publisher,
		breaker:   circuitbreaker.New("mq.order_events", cfg),
	}
}

// Publish 发布订单事件
// ctx可能随请求结束被取消，这里使用独立的超时ctx
func (p *OrderEventPublisher) Publish(ctx context.Context, event order.Event) error {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := p.breaker.Execute(pubCtx, func(ctx context.Context) error {
		return p.publisher.Publish(ctx, event.Type, event)
	})

	switch {
	case err == nil:
		metrics.IncCircuitBreakerRequest(p.breaker.Name(), "success")
		metrics.IncMessagePublished(p.publisher.Exchange(), event.Type, "success")
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.IncCircuitBreakerRequest(p.breaker.Name(), "rejected")
		metrics.IncMessagePublished(p.publisher.Exchange(), event.Type, "failure")
	default:
		metrics.IncCircuitBreakerRequest(p.breaker.Name(), "failure")
		metrics.IncMessagePublished(p.publisher.Exchange(), event.Type, "failure")
	}
	return err
}

// LocalPublisher 未启用消息队列时使用，在进程内直接交给OrderEventHandler处理
type LocalPublisher struct {
	handler *OrderEventHandler
	log     *zap.Logger
}

// NewLocalPublisher 创建进程内发布者
func NewLocalPublisher(handler *OrderEventHandler, log *zap.Logger) *LocalPublisher {
	return &LocalPublisher{handler: handler, log: log}
}

func (p *LocalPublisher) Publish(ctx context.Context, event order.Event) error {
	p.log.Debug("order event (mq disabled)",
		zap.String("type", event.Type),
		zap.Uint("order_id", event.OrderID),
	)
	return p.handler.HandleEvent(ctx, event)
}

var (
	_ order.EventPublisher = (*OrderEventPublisher)(nil)
	_ order.EventPublisher = (*LocalPublisher)(nil)
)
