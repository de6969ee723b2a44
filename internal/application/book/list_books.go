package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 1. 支持分页、关键词搜索、分类/作者/价格过滤
// 2. 排序字段走白名单，非法值回退到默认排序
// 3. 评分聚合由仓储批量查询，不逐行查询
type ListBooksUseCase struct {
	bookRepo book.Repository
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookRepo book.Repository) *ListBooksUseCase {
	return &ListBooksUseCase{bookRepo: bookRepo}
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	Page      int
	PageSize  int
	Search    string
	Category  string
	Author    string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	SortBy    string
	SortOrder string
}

// ListBooksResponse 列表查询响应，分页信息由接口层组装
type ListBooksResponse struct {
	Items    []BookResponse
	Total    int64
	Page     int
	PageSize int
}

func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	params := book.ListParams{
		Page:      req.Page,
		PageSize:  req.PageSize,
		Search:    req.Search,
		Category:  req.Category,
		Author:    req.Author,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	params.Normalize()

	books, total, err := uc.bookRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]BookResponse, len(books))
	for i, b := range books {
		items[i] = NewBookResponse(b)
	}

	return &ListBooksResponse{
		Items:    items,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}
