package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BookRequest 新增/修改图书
// AuthorIDs/CategoryIDs为指针：修改时未出现表示保留原关联，出现空数组表示清空
type BookRequest struct {
	ISBN        string          `json:"isbn" binding:"max=20"`
	Title       string          `json:"title" binding:"required,min=1,max=255"`
	Price       decimal.Decimal `json:"price" binding:"required,gt=0"`
	StockQty    int             `json:"stock_qty" binding:"gte=0"`
	PublisherID *uint           `json:"publisher_id" binding:"omitempty,gt=0"`
	PubDate     string          `json:"pub_date" binding:"omitempty,datetime=2006-01-02"`
	Description string          `json:"description" binding:"max=2000"`
	ImageURL    string          `json:"image_url" binding:"omitempty,url"`
	AuthorIDs   *[]uint         `json:"author_ids" binding:"omitempty,dive,gt=0"`
	CategoryIDs *[]uint         `json:"category_ids" binding:"omitempty,dive,gt=0"`
}

// ApplyDefaults 去除空白，价格保留两位小数
func (r *BookRequest) ApplyDefaults() {
	r.ISBN = strings.TrimSpace(r.ISBN)
	r.Title = strings.TrimSpace(r.Title)
	r.PubDate = strings.TrimSpace(r.PubDate)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.Price = r.Price.Round(2)
}

// BookListQuery 图书列表查询参数
// 排序字段/方向不做校验，非法值由领域层回退到默认值
type BookListQuery struct {
	Page      int    `form:"page" binding:"gte=1"`
	Limit     int    `form:"limit" binding:"gte=1,lte=100"`
	Search    string `form:"search" binding:"max=255"`
	Category  string `form:"category" binding:"max=150"`
	Author    string `form:"author" binding:"max=200"`
	MinPrice  string `form:"min_price" binding:"omitempty,numeric"`
	MaxPrice  string `form:"max_price" binding:"omitempty,numeric"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

func (q *BookListQuery) ApplyDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
	q.Search = strings.TrimSpace(q.Search)
	q.MinPrice = strings.TrimSpace(q.MinPrice)
	q.MaxPrice = strings.TrimSpace(q.MaxPrice)
}

// ReviewRequest 发表评价
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

// AuthorRequest 新增作者
type AuthorRequest struct {
	Name string `json:"name" binding:"required,min=2,max=200"`
	Bio  string `json:"bio" binding:"max=2000"`
}

func (r *AuthorRequest) ApplyDefaults() {
	r.Name = strings.TrimSpace(r.Name)
}

// PublisherRequest 新增出版社
type PublisherRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=200"`
	Address string `json:"address" binding:"max=500"`
	Phone   string `json:"phone" binding:"max=20"`
	Email   string `json:"email" binding:"omitempty,email,max=150"`
}

func (r *PublisherRequest) ApplyDefaults() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}
