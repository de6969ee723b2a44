package book

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book 图书实体（聚合根）
// 1. 价格使用decimal（数据库列decimal(10,2)），避免浮点误差
// 2. ISBN可选，填写时由数据库保证唯一
// 3. 作者、分类通过关联表多对多关联
// 4. AvgRating/ReviewCount为查询时聚合得到的只读字段
type Book struct {
	ID            uint
	ISBN          string
	Title         string
	Price         decimal.Decimal
	StockQty      int
	PublisherID   *uint
	PublisherName string
	PubDate       *time.Time
	Description   string
	ImageURL      string
	Authors       []Author
	Categories    []CategoryRef
	AvgRating     float64
	ReviewCount   int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CategoryRef 图书所属分类的简要信息
type CategoryRef struct {
	ID   uint
	Name string
}

// NewBook 创建新图书（工厂方法）
func NewBook(isbn, title string, price decimal.Decimal, stockQty int, publisherID *uint, pubDate *time.Time, description, imageURL string) (*Book, error) {
	b := &Book{
		ISBN:        isbn,
		Title:       title,
		PublisherID: publisherID,
		PubDate:     pubDate,
		Description: description,
		ImageURL:    imageURL,
	}
	if err := b.SetPrice(price); err != nil {
		return nil, err
	}
	if err := b.SetStock(stockQty); err != nil {
		return nil, err
	}
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	return b, nil
}

// SetPrice 价格必须>0，保留两位小数
func (b *Book) SetPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return ErrInvalidPrice
	}
	b.Price = price.Round(2)
	b.UpdatedAt = time.Now()
	return nil
}

// SetStock 库存不能为负数
func (b *Book) SetStock(qty int) error {
	if qty < 0 {
		return ErrInvalidStock
	}
	b.StockQty = qty
	b.UpdatedAt = time.Now()
	return nil
}

// HasStock 库存是否足够
func (b *Book) HasStock(quantity int) bool {
	return quantity > 0 && b.StockQty >= quantity
}

// DecrStock 扣减库存（下单）
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.StockQty < quantity {
		return ErrInsufficientStock.WithMessage("Insufficient stock for %q", b.Title)
	}
	b.StockQty -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// IncrStock 恢复库存（取消订单）
func (b *Book) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.StockQty += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// Author 作者
type Author struct {
	ID        uint
	Name      string
	Bio       string
	CreatedAt time.Time
}

// Publisher 出版社
type Publisher struct {
	ID        uint
	Name      string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
}

// Review 图书评价
type Review struct {
	ID        uint
	BookID    uint
	UserID    uint
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// NewReview 创建评价，评分范围1-5
func NewReview(bookID, userID uint, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	return &Review{
		BookID:    bookID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}, nil
}
