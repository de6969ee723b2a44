package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/order"
	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
)

// CancelOrderUseCase 取消订单（下单人或管理员）
// 1. 先锁定订单行再检查状态，并发取消时只有一个能通过检查
// 2. 逐项恢复库存并置为cancelled，同一事务内完成
type CancelOrderUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	txManager Transactor
	publisher order.EventPublisher
	log       *zap.Logger
}

// NewCancelOrderUseCase 创建取消订单用例
func NewCancelOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager Transactor,
	publisher order.EventPublisher,
	log *zap.Logger,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		publisher: publisher,
		log:       log,
	}
}

// Execute 只有pending/processing状态可以取消，否则返回400
func (uc *CancelOrderUseCase) Execute(ctx context.Context, actor user.Actor, orderID uint) (*OrderResponse, error) {
	var prev order.Status
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.LockByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if err := actor.Authorize(o.UserID); err != nil {
			return err
		}
		prev = o.Status
		return cancelLocked(txCtx, uc.orderRepo, uc.bookRepo, o)
	})
	if err != nil {
		return nil, err
	}
	metrics.OrdersCancelledTotal.Inc()

	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	publish(ctx, uc.publisher, uc.log, order.NewEvent(order.EventCancelled, o, prev))

	resp := NewOrderResponse(o)
	return &resp, nil
}

// cancelLocked 取消已加锁的订单：状态检查、恢复库存、写入状态
// 明细中的图书即使已被删除也要归还库存，否则订单无法取消
func cancelLocked(ctx context.Context, orderRepo order.Repository, bookRepo book.Repository, o *order.Order) error {
	if err := o.Cancel(); err != nil {
		return err
	}
	for _, item := range o.Items {
		if err := bookRepo.RestoreStock(ctx, item.BookID, item.Quantity); err != nil {
			return err
		}
	}
	return orderRepo.UpdateStatus(ctx, o.ID, o.Status)
}

// publish 事务已提交，发布失败只记录日志
func publish(ctx context.Context, publisher order.EventPublisher, log *zap.Logger, event order.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("publish order event failed",
			zap.String("event", event.Type),
			zap.String("order_no", event.OrderNo),
			zap.Error(err),
		)
	}
}
