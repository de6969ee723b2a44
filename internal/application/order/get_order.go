package order

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/order"
	"github.com/xiebiao/bookstore-admin/internal/domain/user"
)

// GetOrderUseCase 订单详情（下单人或管理员）
type GetOrderUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderUseCase 创建订单详情用例
func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, actor user.Actor, orderID uint) (*OrderResponse, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := actor.Authorize(o.UserID); err != nil {
		return nil, err
	}
	resp := NewOrderResponse(o)
	return &resp, nil
}
