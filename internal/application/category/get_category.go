package category

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/category"
)

// RecentBooksLimit 详情页展示的图书数量
const RecentBooksLimit = 10

// GetCategoryUseCase 分类详情，附该分类下最新的图书
type GetCategoryUseCase struct {
	categoryRepo category.Repository
}

// NewGetCategoryUseCase 创建分类详情用例
func NewGetCategoryUseCase(categoryRepo category.Repository) *GetCategoryUseCase {
	return &GetCategoryUseCase{categoryRepo: categoryRepo}
}

func (uc *GetCategoryUseCase) Execute(ctx context.Context, id uint) (*CategoryDetailResponse, error) {
	c, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := uc.categoryRepo.RecentBooks(ctx, id, RecentBooksLimit)
	if err != nil {
		return nil, err
	}

	resp := &CategoryDetailResponse{
		CategoryResponse: newCategoryResponse(c),
		Books:            make([]BookSummaryResponse, 0, len(books)),
	}
	for _, b := range books {
		resp.Books = append(resp.Books, BookSummaryResponse{
			ID:        b.ID,
			Title:     b.Title,
			Price:     b.Price,
			StockQty:  b.StockQty,
			ImageURL:  b.ImageURL,
			CreatedAt: b.CreatedAt,
		})
	}
	return resp, nil
}
