package book

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	appdashboard "github.com/xiebiao/bookstore-admin/internal/application/dashboard"
	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
)

// UpdateBookUseCase 修改图书
// 字段整体替换；AuthorIDs/CategoryIDs为nil时保留原关联
type UpdateBookUseCase struct {
	bookRepo    book.Repository
	bookService book.Service
	stats       dashboard.StatsInvalidator
}

// NewUpdateBookUseCase 创建修改图书用例
func NewUpdateBookUseCase(bookRepo book.Repository, bookService book.Service, stats dashboard.StatsInvalidator) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookRepo: bookRepo, bookService: bookService, stats: stats}
}

// UpdateBookRequest 修改图书请求
type UpdateBookRequest struct {
	ID          uint
	ISBN        string
	Title       string
	Price       decimal.Decimal
	StockQty    int
	PublisherID *uint
	PubDate     *time.Time
	Description string
	ImageURL    string
	AuthorIDs   *[]uint
	CategoryIDs *[]uint
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookResponse, error) {
	b, err := uc.bookRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	authorIDs := uniquePtr(req.AuthorIDs)
	categoryIDs := uniquePtr(req.CategoryIDs)

	var checkAuthors, checkCategories []uint
	if authorIDs != nil {
		checkAuthors = *authorIDs
	}
	if categoryIDs != nil {
		checkCategories = *categoryIDs
	}
	if err := uc.bookService.ValidateReferences(ctx, req.PublisherID, checkAuthors, checkCategories); err != nil {
		return nil, err
	}

	if err := b.SetPrice(req.Price); err != nil {
		return nil, err
	}
	if err := b.SetStock(req.StockQty); err != nil {
		return nil, err
	}
	b.ISBN = req.ISBN
	b.Title = req.Title
	b.PublisherID = req.PublisherID
	b.PubDate = req.PubDate
	b.Description = req.Description
	b.ImageURL = req.ImageURL

	if err := uc.bookRepo.Update(ctx, b, authorIDs, categoryIDs); err != nil {
		return nil, err
	}
	appdashboard.InvalidateStats(ctx, uc.stats)

	updated, err := uc.bookRepo.FindByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	resp := NewBookResponse(updated)
	return &resp, nil
}

func uniquePtr(ids *[]uint) *[]uint {
	if ids == nil {
		return nil
	}
	out := book.UniqueIDs(*ids)
	if out == nil {
		out = []uint{}
	}
	return &out
}
