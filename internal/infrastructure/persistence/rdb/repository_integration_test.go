package rdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/category"
	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
	"github.com/xiebiao/bookstore-admin/internal/domain/order"
	"github.com/xiebiao/bookstore-admin/internal/domain/user"
)

// 需要真实数据库：
//
//	BOOKSTORE_TEST_DRIVER=mysql BOOKSTORE_TEST_DSN="root:pw@tcp(localhost:3306)/bookstore_test?parseTime=true" go test ./internal/infrastructure/persistence/rdb/...
//
// 未设置BOOKSTORE_TEST_DSN时跳过
type repositorySuite struct {
	suite.Suite

	db         *gorm.DB
	tx         *TxManager
	users      user.Repository
	books      book.Repository
	authors    book.AuthorRepository
	categories category.Repository
	orders     order.Repository
	dashboard  dashboard.Repository
}

func TestRepositorySuite(t *testing.T) {
	if os.Getenv("BOOKSTORE_TEST_DSN") == "" {
		t.Skip("BOOKSTORE_TEST_DSN not set")
	}
	suite.Run(t, new(repositorySuite))
}

func (s *repositorySuite) SetupSuite() {
	dsn := os.Getenv("BOOKSTORE_TEST_DSN")
	dial := mysql.Open(dsn)
	if os.Getenv("BOOKSTORE_TEST_DRIVER") == DialectPostgres {
		dial = postgres.Open(dsn)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)
	s.Require().NoError(AutoMigrate(db))

	s.db = db
	s.tx = NewTxManager(db)
	s.users = NewUserRepository(db)
	s.books = NewBookRepository(db)
	s.authors = NewAuthorRepository(db)
	s.categories = NewCategoryRepository(db)
	s.orders = NewOrderRepository(db)
	s.dashboard = NewDashboardRepository(db)
}

func (s *repositorySuite) SetupTest() {
	for _, table := range []string{"order_items", "orders", "reviews", "book_authors", "book_categories", "books", "authors", "categories", "publishers", "users"} {
		s.Require().NoError(s.db.Exec("DELETE FROM " + table).Error)
	}
}

func (s *repositorySuite) TearDownSuite() {
	if s.db != nil {
		_ = Close(s.db)
	}
}

func (s *repositorySuite) newUser(email string) *user.User {
	u := user.NewUser("Tester", email, "hash", "addr", "")
	s.Require().NoError(s.users.Create(context.Background(), u))
	return u
}

func (s *repositorySuite) newBook(title string, price string, stock int, categoryIDs ...uint) *book.Book {
	b, err := book.NewBook("", title, decimal.RequireFromString(price), stock, nil, nil, "", "")
	s.Require().NoError(err)
	s.Require().NoError(s.books.Create(context.Background(), b, nil, categoryIDs))
	return b
}

func (s *repositorySuite) TestUser_DuplicateEmail() {
	s.newUser("dup@example.com")

	err := s.users.Create(context.Background(), user.NewUser("Other", "dup@example.com", "hash", "", ""))
	s.ErrorIs(err, user.ErrEmailDuplicate)

	var n int64
	s.db.Model(&UserModel{}).Where("email = ?", "dup@example.com").Count(&n)
	s.Equal(int64(1), n)
}

func (s *repositorySuite) TestBook_CreateWithLinksAndFilter() {
	ctx := context.Background()

	a := &book.Author{Name: "Alan Donovan"}
	s.Require().NoError(s.authors.Create(ctx, a))
	c := category.NewCategory("Programming", "")
	s.Require().NoError(s.categories.Create(ctx, c))

	b, err := book.NewBook("978-0134190440", "The Go Programming Language", decimal.RequireFromString("39.99"), 3, nil, nil, "A classic", "")
	s.Require().NoError(err)
	s.Require().NoError(s.books.Create(ctx, b, []uint{a.ID, a.ID}, []uint{c.ID}))
	s.newBook("Unrelated", "10.00", 1)

	got, err := s.books.FindByID(ctx, b.ID)
	s.Require().NoError(err)
	s.Len(got.Authors, 1)
	s.Equal("Programming", got.Categories[0].Name)
	s.True(decimal.RequireFromString("39.99").Equal(got.Price))

	list, total, err := s.books.List(ctx, book.ListParams{Category: "program", SortBy: "bogus"})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(b.ID, list[0].ID)

	_, total, err = s.books.List(ctx, book.ListParams{Search: "CLASSIC"})
	s.Require().NoError(err)
	s.Equal(int64(1), total)

	dup, err := book.NewBook("978-0134190440", "Copy", decimal.NewFromInt(1), 1, nil, nil, "", "")
	s.Require().NoError(err)
	s.ErrorIs(s.books.Create(ctx, dup, nil, nil), book.ErrISBNDuplicate)
}

func (s *repositorySuite) TestBook_DeleteRemovesLinks() {
	ctx := context.Background()
	c := category.NewCategory("Temp", "")
	s.Require().NoError(s.categories.Create(ctx, c))
	b := s.newBook("Soon Gone", "5.00", 1, c.ID)

	n, err := s.categories.CountBooks(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	s.Require().NoError(s.books.Delete(ctx, b.ID))
	n, err = s.categories.CountBooks(ctx, c.ID)
	s.Require().NoError(err)
	s.Zero(n)

	s.ErrorIs(s.books.Delete(ctx, b.ID), book.ErrBookNotFound)
	_, err = s.books.FindByID(ctx, b.ID)
	s.ErrorIs(err, book.ErrBookNotFound)
}

func (s *repositorySuite) TestBook_UpdateStockGuard() {
	ctx := context.Background()
	b := s.newBook("Scarce", "12.50", 2)

	s.NoError(s.books.UpdateStock(ctx, b.ID, -2))
	s.ErrorIs(s.books.UpdateStock(ctx, b.ID, -1), book.ErrInsufficientStock)
	s.ErrorIs(s.books.UpdateStock(ctx, b.ID+1000, -1), book.ErrBookNotFound)
}

func (s *repositorySuite) TestBook_DeleteReleasesISBN() {
	ctx := context.Background()
	first, err := book.NewBook("978-0262033848", "Algorithms", decimal.NewFromInt(80), 1, nil, nil, "", "")
	s.Require().NoError(err)
	s.Require().NoError(s.books.Create(ctx, first, nil, nil))
	s.Require().NoError(s.books.Delete(ctx, first.ID))

	again, err := book.NewBook("978-0262033848", "Algorithms, 3rd ed.", decimal.NewFromInt(90), 1, nil, nil, "", "")
	s.Require().NoError(err)
	s.Require().NoError(s.books.Create(ctx, again, nil, nil))
	s.NotEqual(first.ID, again.ID)
}

func (s *repositorySuite) TestBook_RestoreStockAfterDelete() {
	ctx := context.Background()
	u := s.newUser("late-cancel@example.com")
	b := s.newBook("Withdrawn", "12.50", 10)

	o, err := order.NewOrder(order.GenerateOrderNo(), u.ID, "1 Main St",
		[]order.OrderItem{{BookID: b.ID, Quantity: 2, UnitPrice: b.Price}})
	s.Require().NoError(err)
	s.Require().NoError(s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.orders.Create(ctx, o); err != nil {
			return err
		}
		return s.books.UpdateStock(ctx, b.ID, -2)
	}))

	s.Require().NoError(s.books.Delete(ctx, b.ID))
	s.ErrorIs(s.books.UpdateStock(ctx, b.ID, 2), book.ErrBookNotFound)

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		locked, err := s.orders.LockByID(ctx, o.ID)
		if err != nil {
			return err
		}
		if err := locked.Cancel(); err != nil {
			return err
		}
		for _, item := range locked.Items {
			if err := s.books.RestoreStock(ctx, item.BookID, item.Quantity); err != nil {
				return err
			}
		}
		return s.orders.UpdateStatus(ctx, locked.ID, locked.Status)
	})
	s.Require().NoError(err)

	var m BookModel
	s.Require().NoError(s.db.Unscoped().First(&m, b.ID).Error)
	s.Equal(10, m.StockQty)

	got, err := s.orders.FindByID(ctx, o.ID)
	s.Require().NoError(err)
	s.Equal(order.StatusCancelled, got.Status)

	s.ErrorIs(s.books.RestoreStock(ctx, b.ID+1000, 1), book.ErrBookNotFound)
}

func (s *repositorySuite) TestOrder_CreateInTransactionAndRollback() {
	ctx := context.Background()
	u := s.newUser("buyer@example.com")
	b := s.newBook("Go", "12.50", 10)

	var created *order.Order
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		locked, err := s.books.LockByID(ctx, b.ID)
		if err != nil {
			return err
		}
		o, err := order.NewOrder(order.GenerateOrderNo(), u.ID, "1 Main St",
			[]order.OrderItem{{BookID: locked.ID, Quantity: 2, UnitPrice: locked.Price}})
		if err != nil {
			return err
		}
		if err := s.books.UpdateStock(ctx, b.ID, -2); err != nil {
			return err
		}
		created = o
		return s.orders.Create(ctx, o)
	})
	s.Require().NoError(err)

	got, err := s.orders.FindByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("25", got.TotalAmount.String())
	s.Equal("Go", got.Items[0].BookTitle)
	s.Equal("Tester", got.CustomerName)

	after, err := s.books.FindByID(ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(8, after.StockQty)

	// 事务内出错：库存与订单均不变
	boom := errors.New("boom")
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.books.UpdateStock(ctx, b.ID, -1); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	after, err = s.books.FindByID(ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(8, after.StockQty)

	list, total, err := s.orders.List(ctx, order.ListParams{UserID: &u.ID})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(int64(1), list[0].ItemCount)
}

func (s *repositorySuite) TestDashboard_Aggregates() {
	ctx := context.Background()
	u := s.newUser(fmt.Sprintf("dash%d@example.com", time.Now().UnixNano()))
	b := s.newBook("Seller", "10.00", 3)

	o, err := order.NewOrder(order.GenerateOrderNo(), u.ID, "addr",
		[]order.OrderItem{{BookID: b.ID, Quantity: 3, UnitPrice: b.Price}})
	s.Require().NoError(err)
	o.Status = order.StatusCompleted
	s.Require().NoError(s.orders.Create(ctx, o))

	ov, err := s.dashboard.Overview(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), ov.TotalCustomers)
	s.True(decimal.NewFromInt(30).Equal(ov.TotalRevenue))

	top, err := s.dashboard.TopBooks(ctx, dashboard.TopBooksLimit)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal(int64(3), top[0].TotalSold)

	trends, err := s.dashboard.SalesTrends(ctx, dashboard.PeriodDay, dashboard.PeriodDay.Since(time.Now(), 7), 7)
	s.Require().NoError(err)
	s.Require().Len(trends, 1)
	s.Equal(int64(1), trends[0].UniqueCustomers)

	counts, err := s.dashboard.CustomerOrderCounts(ctx)
	s.Require().NoError(err)
	s.Equal([]int64{1}, counts)
}
