package category

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category 图书分类
type Category struct {
	ID          uint
	Name        string
	Description string
	BookCount   int64 // 列表查询时聚合
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类
func NewCategory(name, description string) *Category {
	now := time.Now()
	return &Category{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Update 修改名称和描述
func (c *Category) Update(name, description string) {
	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
}

// BookSummary 分类详情页中的图书摘要
type BookSummary struct {
	ID        uint
	Title     string
	Price     decimal.Decimal
	StockQty  int
	ImageURL  string
	CreatedAt time.Time
}
