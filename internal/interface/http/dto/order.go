package dto

import "strings"

// CreateOrderRequest 下单请求
// 客户端只传图书ID与数量，价格以服务端为准
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string             `json:"shipping_address" binding:"required,max=500"`
}

// OrderItemRequest 订单明细
type OrderItemRequest struct {
	BookID   uint `json:"book_id" binding:"required,gt=0"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

func (r *CreateOrderRequest) ApplyDefaults() {
	r.ShippingAddress = strings.TrimSpace(r.ShippingAddress)
}

// UpdateOrderStatusRequest 修改订单状态
// 枚举校验由领域层完成（order.ParseStatus），保证非法值在任何写入之前被拒绝
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderListQuery 订单列表查询参数，user_id仅对管理员生效
type OrderListQuery struct {
	Page   int    `form:"page" binding:"gte=1"`
	Limit  int    `form:"limit" binding:"gte=1,lte=100"`
	Status string `form:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled completed"`
	UserID *uint  `form:"user_id" binding:"omitempty,gt=0"`
}

func (q *OrderListQuery) ApplyDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
}
