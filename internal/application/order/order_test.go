package order

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/order"
	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	os.Exit(m.Run())
}

type fixture struct {
	store     *memStore
	publisher *recordingPublisher
	create    *CreateOrderUseCase
	cancel    *CancelOrderUseCase
	status    *UpdateStatusUseCase
	get       *GetOrderUseCase
	list      *ListOrdersUseCase
}

func newFixture(books ...*book.Book) *fixture {
	s := newMemStore(books...)
	pub := &recordingPublisher{}
	log := zap.NewNop()
	orders := memOrderRepo{s: s}
	bookRepo := memBookRepo{s: s}
	return &fixture{
		store:     s,
		publisher: pub,
		create:    NewCreateOrderUseCase(orders, bookRepo, s, pub, log),
		cancel:    NewCancelOrderUseCase(orders, bookRepo, s, pub, log),
		status:    NewUpdateStatusUseCase(orders, bookRepo, s, pub, log),
		get:       NewGetOrderUseCase(orders),
		list:      NewListOrdersUseCase(orders),
	}
}

func testBooks() []*book.Book {
	return []*book.Book{
		{ID: 1, Title: "Go in Action", Price: decimal.RequireFromString("12.50"), StockQty: 10},
		{ID: 2, Title: "The Go Programming Language", Price: decimal.RequireFromString("30.00"), StockQty: 1},
	}
}

func TestCreateOrderUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("金额按锁定时价格计算并扣减库存", func(t *testing.T) {
		f := newFixture(testBooks()...)

		resp, err := f.create.Execute(ctx, CreateOrderRequest{
			UserID:          7,
			ShippingAddress: "1 Main St",
			Items:           []CreateOrderItem{{BookID: 1, Quantity: 2}},
		})
		require.NoError(t, err)

		assert.Equal(t, "25", resp.TotalAmount.String())
		assert.Equal(t, string(order.StatusPending), resp.Status)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "12.5", resp.Items[0].UnitPrice.String())
		assert.Equal(t, 8, f.store.stock(1))

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, order.EventCreated, f.publisher.events[0].Type)
	})

	t.Run("库存不足时整体回滚", func(t *testing.T) {
		f := newFixture(testBooks()...)

		_, err := f.create.Execute(ctx, CreateOrderRequest{
			UserID:          7,
			ShippingAddress: "1 Main St",
			Items:           []CreateOrderItem{{BookID: 1, Quantity: 3}, {BookID: 2, Quantity: 2}},
		})
		assert.ErrorIs(t, err, book.ErrInsufficientStock)
		assert.Contains(t, err.Error(), `Insufficient stock for "The Go Programming Language"`)

		assert.Equal(t, 10, f.store.stock(1))
		assert.Equal(t, 1, f.store.stock(2))
		assert.Empty(t, f.store.orders)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("图书不存在", func(t *testing.T) {
		f := newFixture(testBooks()...)

		_, err := f.create.Execute(ctx, CreateOrderRequest{
			UserID:          7,
			ShippingAddress: "1 Main St",
			Items:           []CreateOrderItem{{BookID: 99, Quantity: 1}},
		})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.Contains(t, err.Error(), "Book 99 not found")
	})

	t.Run("重复图书合并且按ID升序加锁", func(t *testing.T) {
		f := newFixture(testBooks()...)

		resp, err := f.create.Execute(ctx, CreateOrderRequest{
			UserID:          7,
			ShippingAddress: "1 Main St",
			Items: []CreateOrderItem{
				{BookID: 2, Quantity: 1},
				{BookID: 1, Quantity: 1},
				{BookID: 1, Quantity: 2},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, []uint{1, 2}, f.store.locked)
		assert.Len(t, resp.Items, 2)
		assert.Equal(t, "67.5", resp.TotalAmount.String())
		assert.Equal(t, 7, f.store.stock(1))
		assert.Equal(t, 0, f.store.stock(2))
	})

	t.Run("事件发布失败不影响下单", func(t *testing.T) {
		f := newFixture(testBooks()...)
		f.publisher.err = errors.New("broker down")

		_, err := f.create.Execute(ctx, CreateOrderRequest{
			UserID:          7,
			ShippingAddress: "1 Main St",
			Items:           []CreateOrderItem{{BookID: 1, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Len(t, f.store.orders, 1)
	})
}

func TestMergeItems(t *testing.T) {
	_, err := mergeItems(nil)
	assert.ErrorIs(t, err, order.ErrEmptyItems)

	_, err = mergeItems([]CreateOrderItem{{BookID: 1, Quantity: 0}})
	assert.ErrorIs(t, err, order.ErrInvalidQuantity)
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "insufficient_stock", failureReason(book.ErrInsufficientStock.WithMessage("x")))
	assert.Equal(t, "book_not_found", failureReason(book.ErrBookNotFound))
	assert.Equal(t, "validation", failureReason(order.ErrEmptyItems))
	assert.Equal(t, "internal", failureReason(errors.New("boom")))
}

func placeOrder(t *testing.T, f *fixture, userID uint, qty int) uint {
	t.Helper()
	resp, err := f.create.Execute(context.Background(), CreateOrderRequest{
		UserID:          userID,
		ShippingAddress: "1 Main St",
		Items:           []CreateOrderItem{{BookID: 1, Quantity: qty}},
	})
	require.NoError(t, err)
	return resp.ID
}

func TestCancelOrderUseCase(t *testing.T) {
	ctx := context.Background()
	owner := user.Actor{ID: 7, Role: user.RoleCustomer}

	t.Run("取消后恢复库存", func(t *testing.T) {
		f := newFixture(testBooks()...)
		id := placeOrder(t, f, 7, 2)
		require.Equal(t, 8, f.store.stock(1))

		resp, err := f.cancel.Execute(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, string(order.StatusCancelled), resp.Status)
		assert.Equal(t, 10, f.store.stock(1))
		assert.Equal(t, order.EventCancelled, f.publisher.events[len(f.publisher.events)-1].Type)
	})

	t.Run("已发货订单不能取消", func(t *testing.T) {
		f := newFixture(testBooks()...)
		id := placeOrder(t, f, 7, 2)
		_, err := f.status.Execute(ctx, id, "shipped")
		require.NoError(t, err)

		_, err = f.cancel.Execute(ctx, owner, id)
		assert.ErrorIs(t, err, order.ErrNotCancellable)
		assert.Equal(t, 8, f.store.stock(1))
	})

	t.Run("重复取消不会重复恢复库存", func(t *testing.T) {
		f := newFixture(testBooks()...)
		id := placeOrder(t, f, 7, 2)

		_, err := f.cancel.Execute(ctx, owner, id)
		require.NoError(t, err)
		_, err = f.cancel.Execute(ctx, owner, id)
		assert.ErrorIs(t, err, order.ErrNotCancellable)
		assert.Equal(t, 10, f.store.stock(1))
	})

	t.Run("图书已删除仍可取消并归还库存", func(t *testing.T) {
		f := newFixture(testBooks()...)
		id := placeOrder(t, f, 7, 2)
		require.NoError(t, memBookRepo{s: f.store}.Delete(ctx, 1))

		resp, err := f.cancel.Execute(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, string(order.StatusCancelled), resp.Status)
		assert.Equal(t, 10, f.store.stock(1))
	})

	t.Run("其他客户无权取消", func(t *testing.T) {
		f := newFixture(testBooks()...)
		id := placeOrder(t, f, 7, 1)

		_, err := f.cancel.Execute(ctx, user.Actor{ID: 8, Role: user.RoleCustomer}, id)
		assert.ErrorIs(t, err, user.ErrAccessDenied)
		assert.Equal(t, 9, f.store.stock(1))
	})
}

func TestUpdateStatusUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("非法状态不写库", func(t *testing.T) {
		f := newFixture(testBooks()...)
		id := placeOrder(t, f, 7, 1)

		_, err := f.status.Execute(ctx, id, "refunded")
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
		assert.Equal(t, order.StatusPending, f.store.orders[id].Status)
	})

	t.Run("设置为cancelled走取消流程", func(t *testing.T) {
		f := newFixture(testBooks()...)
		id := placeOrder(t, f, 7, 3)

		resp, err := f.status.Execute(ctx, id, "cancelled")
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, 10, f.store.stock(1))

		last := f.publisher.events[len(f.publisher.events)-1]
		assert.Equal(t, order.EventStatusChanged, last.Type)
		assert.Equal(t, order.StatusPending, last.PrevStatus)
	})

	t.Run("图书已删除时管理员仍可取消", func(t *testing.T) {
		f := newFixture(testBooks()...)
		id := placeOrder(t, f, 7, 4)
		require.NoError(t, memBookRepo{s: f.store}.Delete(ctx, 1))

		resp, err := f.status.Execute(ctx, id, "cancelled")
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, 10, f.store.stock(1))
	})

	t.Run("已取消订单不能修改状态", func(t *testing.T) {
		f := newFixture(testBooks()...)
		id := placeOrder(t, f, 7, 1)
		_, err := f.status.Execute(ctx, id, "cancelled")
		require.NoError(t, err)

		_, err = f.status.Execute(ctx, id, "processing")
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)
	})
}

func TestGetAndListOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(testBooks()...)
	mine := placeOrder(t, f, 7, 1)
	placeOrder(t, f, 8, 1)

	t.Run("非下单人返回403", func(t *testing.T) {
		_, err := f.get.Execute(ctx, user.Actor{ID: 8, Role: user.RoleCustomer}, mine)
		assert.ErrorIs(t, err, user.ErrAccessDenied)
	})

	t.Run("管理员可查看任意订单", func(t *testing.T) {
		resp, err := f.get.Execute(ctx, user.Actor{ID: 1, Role: user.RoleAdmin}, mine)
		require.NoError(t, err)
		assert.Equal(t, uint(7), resp.UserID)
	})

	t.Run("customer只能看到自己的订单", func(t *testing.T) {
		other := uint(8)
		resp, err := f.list.Execute(ctx, ListOrdersRequest{Actor: user.Actor{ID: 7, Role: user.RoleCustomer}, UserID: &other})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, uint(7), resp.Items[0].UserID)
	})

	t.Run("管理员查看全部", func(t *testing.T) {
		resp, err := f.list.Execute(ctx, ListOrdersRequest{Actor: user.Actor{ID: 1, Role: user.RoleAdmin}})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Total)
	})

	t.Run("状态过滤值非法", func(t *testing.T) {
		_, err := f.list.Execute(ctx, ListOrdersRequest{Actor: user.Actor{ID: 1, Role: user.RoleAdmin}, Status: "lost"})
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
	})
}
