package book

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
)

// RecentReviewsLimit 详情页展示的评价条数
const RecentReviewsLimit = 5

// GetBookUseCase 图书详情
type GetBookUseCase struct {
	bookRepo book.Repository
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookRepo book.Repository) *GetBookUseCase {
	return &GetBookUseCase{bookRepo: bookRepo}
}

// Execute 不存在返回ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDetailResponse, error) {
	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := uc.bookRepo.RecentReviews(ctx, id, RecentReviewsLimit)
	if err != nil {
		return nil, err
	}

	resp := &BookDetailResponse{
		BookResponse:  NewBookResponse(b),
		RecentReviews: make([]ReviewResponse, 0, len(reviews)),
	}
	for _, r := range reviews {
		resp.RecentReviews = append(resp.RecentReviews, newReviewResponse(r))
	}
	return resp, nil
}
