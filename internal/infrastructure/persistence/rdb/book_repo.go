package rdb

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// bookRepository 图书仓储实现
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 唯一约束冲突（ISBN重复）转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书，图书与关联表写入同一事务
func (r *bookRepository) Create(ctx context.Context, b *book.Book, authorIDs, categoryIDs []uint) error {
	m := toBookModel(b)

	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return err
		}
		if err := insertAuthorLinks(tx, m.ID, authorIDs); err != nil {
			return err
		}
		return insertCategoryLinks(tx, m.ID, categoryIDs)
	})
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.ErrDatabaseError.WithErr(err)
	}

	b.ID = m.ID
	b.CreatedAt, b.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

// FindByID 图书详情，预加载出版社、作者、分类并聚合评分
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var m BookModel
	err := r.getDB(ctx).
		Preload("Publisher").
		Preload("Authors", orderByName).
		Preload("Categories", orderByName).
		First(&m, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}

	b := toBookEntity(&m)
	ratings, err := r.loadRatings(ctx, []uint{m.ID})
	if err != nil {
		return nil, err
	}
	applyRating(b, ratings)
	return b, nil
}

// Update 更新图书字段，authorIDs/categoryIDs非nil时先删后批量插入关联
func (r *bookRepository) Update(ctx context.Context, b *book.Book, authorIDs, categoryIDs *[]uint) error {
	m := toBookModel(b)

	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&BookModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
			"isbn":         m.ISBN,
			"title":        m.Title,
			"price":        m.Price,
			"stock_qty":    m.StockQty,
			"publisher_id": m.PublisherID,
			"pub_date":     m.PubDate,
			"description":  m.Description,
			"image_url":    m.ImageURL,
			"updated_at":   b.UpdatedAt,
		}).Error
		if err != nil {
			return err
		}

		if authorIDs != nil {
			if err := tx.Where("book_id = ?", b.ID).Delete(&BookAuthorModel{}).Error; err != nil {
				return err
			}
			if err := insertAuthorLinks(tx, b.ID, *authorIDs); err != nil {
				return err
			}
		}
		if categoryIDs != nil {
			if err := tx.Where("book_id = ?", b.ID).Delete(&BookCategoryModel{}).Error; err != nil {
				return err
			}
			if err := insertCategoryLinks(tx, b.ID, *categoryIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.ErrDatabaseError.WithErr(err)
	}
	return nil
}

// Delete 软删除图书并移除作者/分类关联
// 1. 订单明细仍引用该图书，历史订单通过Unscoped读取标题
// 2. ISBN置空后再删除，同一ISBN可以重新录入（订单明细保存了ISBN快照）
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&BookModel{}).Where("id = ?", id).Update("isbn", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		if err := tx.Where("book_id = ?", id).Delete(&BookAuthorModel{}).Error; err != nil {
			return err
		}
		return tx.Where("book_id = ?", id).Delete(&BookCategoryModel{}).Error
	})
	if err != nil {
		if apperrors.Is(err, book.ErrBookNotFound) {
			return err
		}
		return apperrors.ErrDatabaseError.WithErr(err)
	}
	return nil
}

// List 分页查询图书列表
// 1. search匹配标题和简介，category/author通过EXISTS子查询匹配名称，均不区分大小写
// 2. 排序字段来自白名单
// 3. 评分聚合按本页图书ID一次查询
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	params.Normalize()

	query := r.getDB(ctx).Model(&BookModel{})

	if params.Search != "" {
		p := likePattern(params.Search)
		query = query.Where("(LOWER(books.title) LIKE ? OR LOWER(books.description) LIKE ?)", p, p)
	}
	if params.Category != "" {
		query = query.Where(`EXISTS (SELECT 1 FROM book_categories bc
			JOIN categories c ON c.id = bc.category_id
			WHERE bc.book_id = books.id AND LOWER(c.name) LIKE ?)`, likePattern(params.Category))
	}
	if params.Author != "" {
		query = query.Where(`EXISTS (SELECT 1 FROM book_authors ba
			JOIN authors a ON a.id = ba.author_id
			WHERE ba.book_id = books.id AND LOWER(a.name) LIKE ?)`, likePattern(params.Author))
	}
	if params.MinPrice != nil {
		query = query.Where("books.price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("books.price <= ?", *params.MaxPrice)
	}

	// 计数与分页查询复用同一组过滤条件
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithErr(err)
	}
	if total == 0 {
		return []*book.Book{}, 0, nil
	}

	var models []BookModel
	err := query.
		Preload("Publisher").
		Preload("Authors", orderByName).
		Preload("Categories", orderByName).
		Order("books." + params.OrderClause()).
		Order("books.id DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithErr(err)
	}

	ids := make([]uint, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}
	ratings, err := r.loadRatings(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
		applyRating(books[i], ratings)
	}
	return books, total, nil
}

// LockByID 悲观锁查询图书（用于下单和取消订单）
// 必须使用getDB(ctx)从context获取事务DB，否则锁在语句结束时即释放
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var m BookModel
	err := r.getDB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound.WithMessage("Book %d not found", id)
		}
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return toBookEntity(&m), nil
}

// UpdateStock 原子更新库存
// UPDATE books SET stock_qty = stock_qty + ? WHERE id = ? AND stock_qty + ? >= 0
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	db := r.getDB(ctx)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock_qty + ? >= 0", delta).
		Update("stock_qty", gorm.Expr("stock_qty + ?", delta))
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithErr(result.Error)
	}

	if result.RowsAffected == 0 {
		// 图书不存在或库存不足，再查一次确定原因
		var count int64
		if err := db.Model(&BookModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return apperrors.ErrDatabaseError.WithErr(err)
		}
		if count == 0 {
			return book.ErrBookNotFound.WithMessage("Book %d not found", id)
		}
		return book.ErrInsufficientStock
	}

	return nil
}

// RestoreStock 取消订单时归还库存
// 图书可能在下单后被软删除，使用Unscoped绕过deleted_at条件
func (r *bookRepository) RestoreStock(ctx context.Context, id uint, qty int) error {
	result := r.getDB(ctx).Unscoped().Model(&BookModel{}).
		Where("id = ?", id).
		Update("stock_qty", gorm.Expr("stock_qty + ?", qty))
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound.WithMessage("Book %d not found", id)
	}
	return nil
}

func (r *bookRepository) RecentReviews(ctx context.Context, bookID uint, limit int) ([]*book.Review, error) {
	var models []ReviewModel
	err := r.getDB(ctx).
		Preload("User").
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}

	out := make([]*book.Review, len(models))
	for i, m := range models {
		rv := &book.Review{
			ID:        m.ID,
			BookID:    m.BookID,
			UserID:    m.UserID,
			Rating:    m.Rating,
			Comment:   m.Comment,
			CreatedAt: m.CreatedAt,
		}
		if m.User != nil {
			rv.UserName = m.User.Name
		}
		out[i] = rv
	}
	return out, nil
}

func (r *bookRepository) CreateReview(ctx context.Context, rv *book.Review) error {
	m := &ReviewModel{
		BookID:    rv.BookID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
	if err := r.getDB(ctx).Create(m).Error; err != nil {
		return apperrors.ErrDatabaseError.WithErr(err)
	}
	rv.ID = m.ID
	return nil
}

type ratingRow struct {
	BookID      uint
	AvgRating   float64
	ReviewCount int64
}

// loadRatings 批量查询评分聚合，避免逐行查询
func (r *bookRepository) loadRatings(ctx context.Context, ids []uint) (map[uint]ratingRow, error) {
	out := make(map[uint]ratingRow, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []ratingRow
	err := r.getDB(ctx).
		Model(&ReviewModel{}).
		Select("book_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count").
		Where("book_id IN ?", ids).
		Group("book_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	for _, row := range rows {
		out[row.BookID] = row
	}
	return out, nil
}

func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	return txFromContext(ctx, r.db)
}

func insertAuthorLinks(tx *gorm.DB, bookID uint, ids []uint) error {
	ids = book.UniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	links := make([]BookAuthorModel, len(ids))
	for i, id := range ids {
		links[i] = BookAuthorModel{BookID: bookID, AuthorID: id}
	}
	return tx.Create(&links).Error
}

func insertCategoryLinks(tx *gorm.DB, bookID uint, ids []uint) error {
	ids = book.UniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	links := make([]BookCategoryModel, len(ids))
	for i, id := range ids {
		links[i] = BookCategoryModel{BookID: bookID, CategoryID: id}
	}
	return tx.Create(&links).Error
}

func orderByName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

func applyRating(b *book.Book, ratings map[uint]ratingRow) {
	if row, ok := ratings[b.ID]; ok {
		b.AvgRating = roundRating(row.AvgRating)
		b.ReviewCount = row.ReviewCount
	}
}

// roundRating 平均分保留一位小数
func roundRating(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}

// =========================================
// 辅助函数：模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	m := &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Price:       b.Price,
		StockQty:    b.StockQty,
		PublisherID: b.PublisherID,
		PubDate:     dateOnly(b.PubDate),
		Description: b.Description,
		ImageURL:    b.ImageURL,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.ISBN != "" {
		isbn := b.ISBN
		m.ISBN = &isbn
	}
	return m
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(m *BookModel) *book.Book {
	b := &book.Book{
		ID:          m.ID,
		Title:       m.Title,
		Price:       m.Price,
		StockQty:    m.StockQty,
		PublisherID: m.PublisherID,
		PubDate:     m.PubDate,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Authors:     make([]book.Author, 0, len(m.Authors)),
		Categories:  make([]book.CategoryRef, 0, len(m.Categories)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.ISBN != nil {
		b.ISBN = *m.ISBN
	}
	if m.Publisher != nil {
		b.PublisherName = m.Publisher.Name
	}
	for i := range m.Authors {
		b.Authors = append(b.Authors, authorToEntity(&m.Authors[i]))
	}
	for _, c := range m.Categories {
		b.Categories = append(b.Categories, book.CategoryRef{ID: c.ID, Name: c.Name})
	}
	return b
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return &d
}
