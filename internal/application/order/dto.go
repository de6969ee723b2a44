package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-admin/internal/domain/order"
)

// =========================================
// 应用层DTO
// =========================================

// OrderItemResponse 订单明细
type OrderItemResponse struct {
	ID        uint            `json:"id"`
	BookID    uint            `json:"book_id"`
	BookTitle string          `json:"book_title,omitempty"`
	BookISBN  string          `json:"book_isbn,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse 订单（列表不含明细，只返回明细数量）
type OrderResponse struct {
	ID              uint                `json:"id"`
	OrderNo         string              `json:"order_no"`
	UserID          uint                `json:"user_id"`
	Status          string              `json:"status"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	ShippingAddress string              `json:"shipping_address"`
	CustomerName    string              `json:"customer_name,omitempty"`
	CustomerEmail   string              `json:"customer_email,omitempty"`
	ItemCount       int64               `json:"item_count"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// NewOrderResponse 领域实体 → 应用层DTO
func NewOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		ItemCount:       o.ItemCount,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if len(o.Items) > 0 {
		resp.ItemCount = int64(len(o.Items))
		resp.Items = make([]OrderItemResponse, len(o.Items))
		for i, it := range o.Items {
			resp.Items[i] = OrderItemResponse{
				ID:        it.ID,
				BookID:    it.BookID,
				BookTitle: it.BookTitle,
				BookISBN:  it.BookISBN,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Subtotal:  it.Subtotal(),
			}
		}
	}
	return resp
}
