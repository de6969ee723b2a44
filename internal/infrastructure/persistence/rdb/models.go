package rdb

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 本文件是infrastructure层的数据模型（带GORM tag）
// domain层实体不依赖GORM，Repository负责两者之间的转换

// UserModel 用户表
type UserModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:150;not null"`
	Email        string    `gorm:"uniqueIndex;size:150;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:20;not null;default:customer;index"`
	Address      string    `gorm:"size:500"`
	Phone        string    `gorm:"size:20"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

// AuthorModel 作者表
type AuthorModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:150;not null;index"`
	Bio       string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AuthorModel) TableName() string { return "authors" }

// PublisherModel 出版社表
type PublisherModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:150;not null"`
	Address   string `gorm:"size:500"`
	Phone     string `gorm:"size:20"`
	Email     string `gorm:"size:150"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PublisherModel) TableName() string { return "publishers" }

// CategoryModel 分类表
type CategoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:150;not null"`
	Description string `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryModel) TableName() string { return "categories" }

// BookModel 图书表
// 1. ISBN可空，非空时唯一
// 2. 价格decimal(10,2)
// 3. 软删除：历史订单仍能关联到图书标题
type BookModel struct {
	ID          uint            `gorm:"primaryKey"`
	ISBN        *string         `gorm:"uniqueIndex;size:20"`
	Title       string          `gorm:"size:255;not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;index"`
	StockQty    int             `gorm:"not null;default:0"`
	PublisherID *uint           `gorm:"index"`
	Publisher   *PublisherModel `gorm:"foreignKey:PublisherID"`
	PubDate     *time.Time      `gorm:"type:date"`
	Description string          `gorm:"type:text"`
	ImageURL    string          `gorm:"size:500"`
	Authors     []AuthorModel   `gorm:"many2many:book_authors;joinForeignKey:BookID;joinReferences:AuthorID"`
	Categories  []CategoryModel `gorm:"many2many:book_categories;joinForeignKey:BookID;joinReferences:CategoryID"`
	CreatedAt   time.Time       `gorm:"index"`
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (BookModel) TableName() string { return "books" }

// BookAuthorModel 图书-作者关联表
type BookAuthorModel struct {
	BookID   uint `gorm:"primaryKey"`
	AuthorID uint `gorm:"primaryKey;index"`
}

func (BookAuthorModel) TableName() string { return "book_authors" }

// BookCategoryModel 图书-分类关联表
type BookCategoryModel struct {
	BookID     uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey;index"`
}

func (BookCategoryModel) TableName() string { return "book_categories" }

// OrderModel 订单表
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	OrderNo         string           `gorm:"uniqueIndex;size:32;not null"`
	UserID          uint             `gorm:"index;not null"`
	User            *UserModel       `gorm:"foreignKey:UserID"`
	Status          string           `gorm:"size:20;not null;default:pending;index"`
	TotalAmount     decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	ShippingAddress string           `gorm:"size:500;not null"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time        `gorm:"index"`
	UpdatedAt       time.Time
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel 订单明细表，UnitPrice为下单时的价格快照
type OrderItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null"`
	BookID    uint            `gorm:"index;not null"`
	Book      *BookModel      `gorm:"foreignKey:BookID"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (OrderItemModel) TableName() string { return "order_items" }

// ReviewModel 评价表
type ReviewModel struct {
	ID        uint       `gorm:"primaryKey"`
	BookID    uint       `gorm:"index;not null"`
	UserID    uint       `gorm:"index;not null"`
	User      *UserModel `gorm:"foreignKey:UserID"`
	Rating    int        `gorm:"not null"`
	Comment   string     `gorm:"size:1000"`
	CreatedAt time.Time  `gorm:"index"`
}

func (ReviewModel) TableName() string { return "reviews" }
