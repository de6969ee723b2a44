package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
)

// ListPublishersUseCase 出版社列表（按名称排序）
type ListPublishersUseCase struct {
	publisherRepo book.PublisherRepository
}

func NewListPublishersUseCase(publisherRepo book.PublisherRepository) *ListPublishersUseCase {
	return &ListPublishersUseCase{publisherRepo: publisherRepo}
}

func (uc *ListPublishersUseCase) Execute(ctx context.Context) ([]PublisherResponse, error) {
	publishers, err := uc.publisherRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PublisherResponse, len(publishers))
	for i, p := range publishers {
		out[i] = newPublisherResponse(p)
	}
	return out, nil
}

// CreatePublisherUseCase 新增出版社，名称重复返回409
type CreatePublisherUseCase struct {
	publisherRepo book.PublisherRepository
}

func NewCreatePublisherUseCase(publisherRepo book.PublisherRepository) *CreatePublisherUseCase {
	return &CreatePublisherUseCase{publisherRepo: publisherRepo}
}

// CreatePublisherRequest 新增出版社请求
type CreatePublisherRequest struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

func (uc *CreatePublisherUseCase) Execute(ctx context.Context, req CreatePublisherRequest) (*PublisherResponse, error) {
	p := &book.Publisher{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: time.Now(),
	}
	if err := uc.publisherRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := newPublisherResponse(p)
	return &resp, nil
}

func newPublisherResponse(p *book.Publisher) PublisherResponse {
	return PublisherResponse{ID: p.ID, Name: p.Name, Address: p.Address, Phone: p.Phone, Email: p.Email}
}
