package category

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-admin/internal/domain/category"
)

// =========================================
// 应用层DTO
// =========================================

// CategoryResponse 分类
type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BookCount   int64     `json:"book_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookSummaryResponse 分类下的图书摘要
type BookSummaryResponse struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	StockQty  int             `json:"stock_qty"`
	ImageURL  string          `json:"image_url,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// CategoryDetailResponse 分类详情
type CategoryDetailResponse struct {
	CategoryResponse
	Books []BookSummaryResponse `json:"books"`
}

func newCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		BookCount:   c.BookCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
