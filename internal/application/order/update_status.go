package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/order"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
)

// UpdateStatusUseCase 管理员修改订单状态
// 1. 状态值在任何写入之前校验
// 2. 目标为cancelled时走取消流程（恢复库存）
// 3. 已取消的订单不能再修改
type UpdateStatusUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	txManager Transactor
	publisher order.EventPublisher
	log       *zap.Logger
}

// NewUpdateStatusUseCase 创建修改状态用例
func NewUpdateStatusUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager Transactor,
	publisher order.EventPublisher,
	log *zap.Logger,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		publisher: publisher,
		log:       log,
	}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, orderID uint, status string) (*OrderResponse, error) {
	target, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var prev order.Status
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.LockByID(txCtx, orderID)
		if err != nil {
			return err
		}
		prev = o.Status

		if target == order.StatusCancelled {
			return cancelLocked(txCtx, uc.orderRepo, uc.bookRepo, o)
		}
		if err := o.TransitionTo(target); err != nil {
			return err
		}
		return uc.orderRepo.UpdateStatus(txCtx, o.ID, o.Status)
	})
	if err != nil {
		return nil, err
	}
	if target == order.StatusCancelled {
		metrics.OrdersCancelledTotal.Inc()
	}

	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	publish(ctx, uc.publisher, uc.log, order.NewEvent(order.EventStatusChanged, o, prev))

	resp := NewOrderResponse(o)
	return &resp, nil
}
