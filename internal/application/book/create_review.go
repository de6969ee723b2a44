package book

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
)

// CreateReviewUseCase 发表图书评价（登录用户）
type CreateReviewUseCase struct {
	bookRepo book.Repository
}

// NewCreateReviewUseCase 创建评价用例
func NewCreateReviewUseCase(bookRepo book.Repository) *CreateReviewUseCase {
	return &CreateReviewUseCase{bookRepo: bookRepo}
}

// CreateReviewRequest 评价请求
type CreateReviewRequest struct {
	BookID   uint
	UserID   uint
	UserName string
	Rating   int
	Comment  string
}

// Execute 图书不存在返回ErrBookNotFound
func (uc *CreateReviewUseCase) Execute(ctx context.Context, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	review, err := book.NewReview(req.BookID, req.UserID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	review.UserName = req.UserName

	if err := uc.bookRepo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	resp := newReviewResponse(review)
	return &resp, nil
}
