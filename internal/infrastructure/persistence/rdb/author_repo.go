package rdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) book.AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) getDB(ctx context.Context) *gorm.DB {
	return txFromContext(ctx, r.db)
}

func (r *authorRepository) List(ctx context.Context) ([]*book.Author, error) {
	var models []AuthorModel
	if err := r.getDB(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	out := make([]*book.Author, len(models))
	for i := range models {
		a := authorToEntity(&models[i])
		out[i] = &a
	}
	return out, nil
}

func (r *authorRepository) Create(ctx context.Context, a *book.Author) error {
	m := &AuthorModel{Name: a.Name, Bio: a.Bio}
	if err := r.getDB(ctx).Create(m).Error; err != nil {
		return apperrors.ErrDatabaseError.WithErr(err)
	}
	a.ID, a.CreatedAt = m.ID, m.CreatedAt
	return nil
}

func (r *authorRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	return countByIDs(ctx, r.db, &AuthorModel{}, ids)
}

func authorToEntity(m *AuthorModel) book.Author {
	return book.Author{ID: m.ID, Name: m.Name, Bio: m.Bio, CreatedAt: m.CreatedAt}
}

// countByIDs 统计ids中实际存在的行数
func countByIDs(ctx context.Context, db *gorm.DB, model interface{}, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	if err := txFromContext(ctx, db).Model(model).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return 0, apperrors.ErrDatabaseError.WithErr(err)
	}
	return n, nil
}
