package book

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	appdashboard "github.com/xiebiao/bookstore-admin/internal/application/dashboard"
	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
)

// CreateBookUseCase 新增图书用例
// 1. 校验出版社/作者/分类引用是否存在
// 2. 图书与关联在同一事务中写入（仓储内完成）
// 3. 重新查询返回完整详情（含出版社名、作者、分类）
// 4. 删除仪表盘统计缓存
type CreateBookUseCase struct {
	bookRepo    book.Repository
	bookService book.Service
	stats       dashboard.StatsInvalidator
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookRepo book.Repository, bookService book.Service, stats dashboard.StatsInvalidator) *CreateBookUseCase {
	return &CreateBookUseCase{bookRepo: bookRepo, bookService: bookService, stats: stats}
}

// CreateBookRequest 新增图书请求
type CreateBookRequest struct {
	ISBN        string
	Title       string
	Price       decimal.Decimal
	StockQty    int
	PublisherID *uint
	PubDate     *time.Time
	Description string
	ImageURL    string
	AuthorIDs   []uint
	CategoryIDs []uint
}

func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	authorIDs := book.UniqueIDs(req.AuthorIDs)
	categoryIDs := book.UniqueIDs(req.CategoryIDs)

	if err := uc.bookService.ValidateReferences(ctx, req.PublisherID, authorIDs, categoryIDs); err != nil {
		return nil, err
	}

	b, err := book.NewBook(req.ISBN, req.Title, req.Price, req.StockQty, req.PublisherID, req.PubDate, req.Description, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := uc.bookRepo.Create(ctx, b, authorIDs, categoryIDs); err != nil {
		return nil, err
	}
	appdashboard.InvalidateStats(ctx, uc.stats)

	created, err := uc.bookRepo.FindByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	resp := NewBookResponse(created)
	return &resp, nil
}
