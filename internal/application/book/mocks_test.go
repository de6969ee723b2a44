package book

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
)

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) Create(ctx context.Context, b *book.Book, authorIDs, categoryIDs []uint) error {
	args := m.Called(ctx, b, authorIDs, categoryIDs)
	if args.Error(0) == nil {
		b.ID = 100
	}
	return args.Error(0)
}

func (m *mockBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockBookRepo) Update(ctx context.Context, b *book.Book, authorIDs, categoryIDs *[]uint) error {
	return m.Called(ctx, b, authorIDs, categoryIDs).Error(0)
}

func (m *mockBookRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	args := m.Called(ctx, params)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Get(1).(int64), args.Error(2)
}

func (m *mockBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockBookRepo) UpdateStock(ctx context.Context, id uint, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *mockBookRepo) RestoreStock(ctx context.Context, id uint, qty int) error {
	return m.Called(ctx, id, qty).Error(0)
}

func (m *mockBookRepo) RecentReviews(ctx context.Context, bookID uint, limit int) ([]*book.Review, error) {
	args := m.Called(ctx, bookID, limit)
	rs, _ := args.Get(0).([]*book.Review)
	return rs, args.Error(1)
}

func (m *mockBookRepo) CreateReview(ctx context.Context, review *book.Review) error {
	return m.Called(ctx, review).Error(0)
}

type mockBookService struct {
	mock.Mock
}

func (m *mockBookService) ValidateReferences(ctx context.Context, publisherID *uint, authorIDs, categoryIDs []uint) error {
	return m.Called(ctx, publisherID, authorIDs, categoryIDs).Error(0)
}

type mockPublisherRepo struct {
	mock.Mock
}

func (m *mockPublisherRepo) List(ctx context.Context) ([]*book.Publisher, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*book.Publisher)
	return ps, args.Error(1)
}

func (m *mockPublisherRepo) Create(ctx context.Context, p *book.Publisher) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPublisherRepo) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// mockStats 仪表盘统计缓存
type mockStats struct {
	mock.Mock
}

func (m *mockStats) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
