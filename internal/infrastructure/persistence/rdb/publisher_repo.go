package rdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

type publisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository 创建出版社仓储
func NewPublisherRepository(db *gorm.DB) book.PublisherRepository {
	return &publisherRepository{db: db}
}

func (r *publisherRepository) getDB(ctx context.Context) *gorm.DB {
	return txFromContext(ctx, r.db)
}

func (r *publisherRepository) List(ctx context.Context) ([]*book.Publisher, error) {
	var models []PublisherModel
	if err := r.getDB(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	out := make([]*book.Publisher, len(models))
	for i, m := range models {
		out[i] = &book.Publisher{
			ID:        m.ID,
			Name:      m.Name,
			Address:   m.Address,
			Phone:     m.Phone,
			Email:     m.Email,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

func (r *publisherRepository) Create(ctx context.Context, p *book.Publisher) error {
	m := &PublisherModel{Name: p.Name, Address: p.Address, Phone: p.Phone, Email: p.Email}
	if err := r.getDB(ctx).Create(m).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrPublisherDuplicate
		}
		return apperrors.ErrDatabaseError.WithErr(err)
	}
	p.ID, p.CreatedAt = m.ID, m.CreatedAt
	return nil
}

func (r *publisherRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	return countByIDs(ctx, r.db, &PublisherModel{}, ids)
}
