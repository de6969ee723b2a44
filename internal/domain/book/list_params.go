package book

import (
	"strings"

	"github.com/shopspring/decimal"
)

// 列表查询的默认值与上限
const (
	DefaultPage      = 1
	DefaultPageSize  = 10
	MaxPageSize      = 100
	DefaultSortBy    = "created_at"
	DefaultSortOrder = "DESC"
)

// sortable 允许排序的字段白名单（值即数据库列名）
var sortable = map[string]string{
	"title":      "title",
	"price":      "price",
	"created_at": "created_at",
	"pub_date":   "pub_date",
}

// ListParams 图书列表查询参数
type ListParams struct {
	Page      int
	PageSize  int
	Search    string           // 标题/简介模糊匹配（不区分大小写）
	Category  string           // 分类名模糊匹配
	Author    string           // 作者名模糊匹配
	MinPrice  *decimal.Decimal // 价格下限（含）
	MaxPrice  *decimal.Decimal // 价格上限（含）
	SortBy    string
	SortOrder string
}

// Normalize 补默认值；白名单之外的排序字段/方向回退到默认值，不报错
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}

	p.Search = strings.TrimSpace(p.Search)
	p.Category = strings.TrimSpace(p.Category)
	p.Author = strings.TrimSpace(p.Author)

	if _, ok := sortable[p.SortBy]; !ok {
		p.SortBy = DefaultSortBy
	}
	switch strings.ToUpper(p.SortOrder) {
	case "ASC":
		p.SortOrder = "ASC"
	case "DESC":
		p.SortOrder = "DESC"
	default:
		p.SortOrder = DefaultSortOrder
	}
}

// Offset 分页偏移量
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// OrderClause 排序子句，只可能由白名单字段拼出
func (p ListParams) OrderClause() string {
	col, ok := sortable[p.SortBy]
	if !ok {
		col = sortable[DefaultSortBy]
	}
	order := DefaultSortOrder
	if p.SortOrder == "ASC" {
		order = "ASC"
	}
	return col + " " + order
}
