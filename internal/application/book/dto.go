package book

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
)

// =========================================
// 应用层DTO
// =========================================

// AuthorResponse 作者
type AuthorResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`
}

// CategoryRefResponse 图书所属分类
type CategoryRefResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// BookResponse 图书（列表与详情共用）
type BookResponse struct {
	ID            uint                  `json:"id"`
	ISBN          string                `json:"isbn,omitempty"`
	Title         string                `json:"title"`
	Price         decimal.Decimal       `json:"price"`
	StockQty      int                   `json:"stock_qty"`
	PublisherID   *uint                 `json:"publisher_id"`
	PublisherName string                `json:"publisher_name,omitempty"`
	PubDate       *string               `json:"pub_date"` // YYYY-MM-DD
	Description   string                `json:"description,omitempty"`
	ImageURL      string                `json:"image_url,omitempty"`
	Authors       []AuthorResponse      `json:"authors"`
	Categories    []CategoryRefResponse `json:"categories"`
	AvgRating     float64               `json:"avg_rating"`
	ReviewCount   int64                 `json:"review_count"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ReviewResponse 评价
type ReviewResponse struct {
	ID        uint      `json:"id"`
	BookID    uint      `json:"book_id"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// BookDetailResponse 图书详情，附最近的评价
type BookDetailResponse struct {
	BookResponse
	RecentReviews []ReviewResponse `json:"recent_reviews"`
}

// PublisherResponse 出版社
type PublisherResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// NewBookResponse 领域实体 → 应用层DTO
func NewBookResponse(b *book.Book) BookResponse {
	resp := BookResponse{
		ID:            b.ID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Price:         b.Price,
		StockQty:      b.StockQty,
		PublisherID:   b.PublisherID,
		PublisherName: b.PublisherName,
		Description:   b.Description,
		ImageURL:      b.ImageURL,
		Authors:       make([]AuthorResponse, 0, len(b.Authors)),
		Categories:    make([]CategoryRefResponse, 0, len(b.Categories)),
		AvgRating:     b.AvgRating,
		ReviewCount:   b.ReviewCount,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if b.PubDate != nil {
		d := b.PubDate.Format("2006-01-02")
		resp.PubDate = &d
	}
	for _, a := range b.Authors {
		resp.Authors = append(resp.Authors, AuthorResponse{ID: a.ID, Name: a.Name})
	}
	for _, c := range b.Categories {
		resp.Categories = append(resp.Categories, CategoryRefResponse{ID: c.ID, Name: c.Name})
	}
	return resp
}

func newReviewResponse(r *book.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
