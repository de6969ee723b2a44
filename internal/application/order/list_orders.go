package order

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/order"
	"github.com/xiebiao/bookstore-admin/internal/domain/user"
)

// ListOrdersUseCase 订单列表
// customer只能看到自己的订单；管理员可按user_id过滤
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest 订单列表请求
type ListOrdersRequest struct {
	Actor    user.Actor
	Page     int
	PageSize int
	Status   string // 空表示不过滤
	UserID   *uint  // 仅管理员生效
}

// ListOrdersResponse 分页信息由接口层组装
type ListOrdersResponse struct {
	Items    []OrderResponse
	Total    int64
	Page     int
	PageSize int
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) (*ListOrdersResponse, error) {
	params := order.ListParams{Page: req.Page, PageSize: req.PageSize}
	params.Normalize()

	if req.Status != "" {
		st, err := order.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		params.Status = &st
	}

	if req.Actor.IsAdmin() {
		params.UserID = req.UserID
	} else {
		id := req.Actor.ID
		params.UserID = &id
	}

	orders, total, err := uc.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, len(orders))
	for i, o := range orders {
		items[i] = NewOrderResponse(o)
	}
	return &ListOrdersResponse{
		Items:    items,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}
