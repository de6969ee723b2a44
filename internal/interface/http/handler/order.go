package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookstore-admin/internal/application/order"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrderUseCase  *apporder.CreateOrderUseCase
	listOrdersUseCase   *apporder.ListOrdersUseCase
	getOrderUseCase     *apporder.GetOrderUseCase
	updateStatusUseCase *apporder.UpdateStatusUseCase
	cancelOrderUseCase  *apporder.CancelOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createOrderUseCase *apporder.CreateOrderUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
	updateStatusUseCase *apporder.UpdateStatusUseCase,
	cancelOrderUseCase *apporder.CancelOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		createOrderUseCase:  createOrderUseCase,
		listOrdersUseCase:   listOrdersUseCase,
		getOrderUseCase:     getOrderUseCase,
		updateStatusUseCase: updateStatusUseCase,
		cancelOrderUseCase:  cancelOrderUseCase,
	}
}

// CreateOrder 下单
// @Summary      创建订单
// @Description  同一事务内锁定库存、写入订单、扣减库存
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      201 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "参数错误或库存不足"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]apporder.CreateOrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = apporder.CreateOrderItem{BookID: it.BookID, Quantity: it.Quantity}
	}

	resp, err := h.createOrderUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID:          middleware.MustGetUser(c).ID,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Order created successfully", resp)
}

// ListOrders 订单列表
// @Summary      订单列表
// @Description  customer只能看到自己的订单，管理员可按user_id过滤
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page    query int    false "页码" default(1)
// @Param        limit   query int    false "每页数量" default(10)
// @Param        status  query string false "订单状态"
// @Param        user_id query int    false "用户ID（管理员）"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q dto.OrderListQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.listOrdersUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		Actor:    middleware.GetActor(c),
		Page:     q.Page,
		PageSize: q.Limit,
		Status:   q.Status,
		UserID:   q.UserID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      403 {object} response.Response "无权访问"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.getOrderUseCase.Execute(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// UpdateStatus 修改订单状态
// @Summary      修改订单状态（管理员）
// @Description  设置为cancelled时恢复库存
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "状态"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "状态非法"
// @Router       /api/v1/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.updateStatusUseCase.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMessage(c, "Order status updated successfully", resp)
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Description  仅pending/processing状态可取消，取消后恢复库存
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "当前状态不可取消"
// @Router       /api/v1/orders/{id} [delete]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.cancelOrderUseCase.Execute(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMessage(c, "Order cancelled successfully", resp)
}
