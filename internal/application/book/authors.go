package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
)

// ListAuthorsUseCase 作者列表（按名称排序）
type ListAuthorsUseCase struct {
	authorRepo book.AuthorRepository
}

func NewListAuthorsUseCase(authorRepo book.AuthorRepository) *ListAuthorsUseCase {
	return &ListAuthorsUseCase{authorRepo: authorRepo}
}

func (uc *ListAuthorsUseCase) Execute(ctx context.Context) ([]AuthorResponse, error) {
	authors, err := uc.authorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AuthorResponse, len(authors))
	for i, a := range authors {
		out[i] = AuthorResponse{ID: a.ID, Name: a.Name, Bio: a.Bio}
	}
	return out, nil
}

// CreateAuthorUseCase 新增作者
type CreateAuthorUseCase struct {
	authorRepo book.AuthorRepository
}

func NewCreateAuthorUseCase(authorRepo book.AuthorRepository) *CreateAuthorUseCase {
	return &CreateAuthorUseCase{authorRepo: authorRepo}
}

// CreateAuthorRequest 新增作者请求
type CreateAuthorRequest struct {
	Name string
	Bio  string
}

func (uc *CreateAuthorUseCase) Execute(ctx context.Context, req CreateAuthorRequest) (*AuthorResponse, error) {
	a := &book.Author{Name: req.Name, Bio: req.Bio, CreatedAt: time.Now()}
	if err := uc.authorRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return &AuthorResponse{ID: a.ID, Name: a.Name, Bio: a.Bio}, nil
}
