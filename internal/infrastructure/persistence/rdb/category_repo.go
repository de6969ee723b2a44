package rdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-admin/internal/domain/category"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) getDB(ctx context.Context) *gorm.DB {
	return txFromContext(ctx, r.db)
}

type categoryRow struct {
	CategoryModel
	BookCount int64
}

// List 按名称排序，LEFT JOIN关联表统计未删除的图书数量
func (r *categoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	var rows []categoryRow
	err := r.getDB(ctx).
		Table("categories AS c").
		Select("c.*, COUNT(b.id) AS book_count").
		Joins("LEFT JOIN book_categories bc ON bc.category_id = c.id").
		Joins("LEFT JOIN books b ON b.id = bc.book_id AND b.deleted_at IS NULL").
		Group("c.id, c.name, c.description, c.created_at, c.updated_at").
		Order("c.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}

	out := make([]*category.Category, len(rows))
	for i := range rows {
		c := categoryToEntity(&rows[i].CategoryModel)
		c.BookCount = rows[i].BookCount
		out[i] = c
	}
	return out, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var m CategoryModel
	if err := r.getDB(ctx).First(&m, id).Error; err != nil {
		if isNotFound(err) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return categoryToEntity(&m), nil
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	m := &CategoryModel{Name: c.Name, Description: c.Description}
	if err := r.getDB(ctx).Create(m).Error; err != nil {
		if isDuplicateError(err) {
			return category.ErrCategoryDuplicate
		}
		return apperrors.ErrDatabaseError.WithErr(err)
	}
	c.ID, c.CreatedAt, c.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	err := r.getDB(ctx).Model(&CategoryModel{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"updated_at":  c.UpdatedAt,
	}).Error
	if err != nil {
		if isDuplicateError(err) {
			return category.ErrCategoryDuplicate
		}
		return apperrors.ErrDatabaseError.WithErr(err)
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&CategoryModel{}, id)
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

// CountBooks 关联表中引用该分类的记录数
// 图书软删除时关联已被移除，这里不需要再过滤deleted_at
func (r *categoryRepository) CountBooks(ctx context.Context, id uint) (int64, error) {
	var n int64
	if err := r.getDB(ctx).Model(&BookCategoryModel{}).Where("category_id = ?", id).Count(&n).Error; err != nil {
		return 0, apperrors.ErrDatabaseError.WithErr(err)
	}
	return n, nil
}

func (r *categoryRepository) RecentBooks(ctx context.Context, id uint, limit int) ([]*category.BookSummary, error) {
	var models []BookModel
	err := r.getDB(ctx).
		Joins("JOIN book_categories bc ON bc.book_id = books.id").
		Where("bc.category_id = ?", id).
		Order("books.created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}

	out := make([]*category.BookSummary, len(models))
	for i, m := range models {
		out[i] = &category.BookSummary{
			ID:        m.ID,
			Title:     m.Title,
			Price:     m.Price,
			StockQty:  m.StockQty,
			ImageURL:  m.ImageURL,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

func (r *categoryRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	return countByIDs(ctx, r.db, &CategoryModel{}, ids)
}

func categoryToEntity(m *CategoryModel) *category.Category {
	return &category.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
