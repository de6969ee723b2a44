package order

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
	"github.com/xiebiao/bookstore-admin/pkg/tracing"
)

const tracerName = "application/order"

// Transactor 事务执行器，由rdb.TxManager实现
// fn内使用传入的ctx，仓储即可加入同一事务
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreateOrderUseCase 创建订单用例
// 防止超卖的完整流程（同一事务内）：
//  1. 合并同一图书的多个明细，按图书ID升序加锁（SELECT ... FOR UPDATE），固定加锁顺序避免死锁
//  2. 锁定后检查库存
//  3. 使用锁定时的价格计算金额，不信任客户端价格
//  4. 写入订单头与明细
//  5. 条件扣减库存（stock_qty >= ?）
//  6. COMMIT后发布order.created事件，发布失败只记日志
type CreateOrderUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	txManager Transactor
	publisher order.EventPublisher
	log       *zap.Logger
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager Transactor,
	publisher order.EventPublisher,
	log *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		publisher: publisher,
		log:       log,
	}
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	UserID          uint
	ShippingAddress string
	Items           []CreateOrderItem
}

// CreateOrderItem 订单明细项
type CreateOrderItem struct {
	BookID   uint
	Quantity int
}

// Execute 执行下单
// 图书不存在返回404，库存不足返回400，两种情况都不会留下任何写入
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	start := time.Now()
	metrics.OrdersInProgress.Inc()
	defer metrics.OrdersInProgress.Dec()

	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateOrder")
	defer span.End()
	span.SetAttributes(
		attribute.Int("order.user_id", int(req.UserID)),
		attribute.Int("order.item_count", len(req.Items)),
	)

	created, err := uc.create(ctx, req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		tracing.RecordError(span, err)
		metrics.ObserveOrderFailed(failureReason(err), elapsed)
		return nil, err
	}
	metrics.ObserveOrderCreated(elapsed)
	span.SetAttributes(attribute.String("order.no", created.OrderNo))

	if err := uc.publisher.Publish(ctx, order.NewEvent(order.EventCreated, created, "")); err != nil {
		uc.log.Warn("publish order event failed",
			zap.String("event", order.EventCreated),
			zap.String("order_no", created.OrderNo),
			zap.Error(err),
		)
	}

	resp := NewOrderResponse(created)
	return &resp, nil
}

func (uc *CreateOrderUseCase) create(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	items, err := mergeItems(req.Items)
	if err != nil {
		return nil, err
	}

	var result *order.Order
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 步骤1：按ID升序锁定图书并检查库存
		orderItems := make([]order.OrderItem, 0, len(items))
		for _, item := range items {
			b, err := uc.bookRepo.LockByID(txCtx, item.BookID)
			if err != nil {
				return err
			}
			if !b.HasStock(item.Quantity) {
				return book.ErrInsufficientStock.WithMessage("Insufficient stock for %q", b.Title)
			}

			// 步骤2：价格快照
			orderItems = append(orderItems, order.OrderItem{
				BookID:    b.ID,
				Quantity:  item.Quantity,
				UnitPrice: b.Price,
				BookTitle: b.Title,
				BookISBN:  b.ISBN,
			})
		}

		// 步骤3：写入订单
		o, err := order.NewOrder(order.GenerateOrderNo(), req.UserID, req.ShippingAddress, orderItems)
		if err != nil {
			return err
		}
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}

		// 步骤4：扣减库存，失败则整个事务回滚
		for _, item := range items {
			if err := uc.bookRepo.UpdateStock(txCtx, item.BookID, -item.Quantity); err != nil {
				return err
			}
		}

		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// mergeItems 合并同一图书的明细，按图书ID升序返回
func mergeItems(items []CreateOrderItem) ([]CreateOrderItem, error) {
	if len(items) == 0 {
		return nil, order.ErrEmptyItems
	}

	qty := make(map[uint]int, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, order.ErrInvalidQuantity
		}
		qty[it.BookID] += it.Quantity
	}

	merged := make([]CreateOrderItem, 0, len(qty))
	for id, q := range qty {
		merged = append(merged, CreateOrderItem{BookID: id, Quantity: q})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].BookID < merged[j].BookID })
	return merged, nil
}

// failureReason 下单失败原因（metrics标签）
func failureReason(err error) string {
	switch {
	case apperrors.Is(err, book.ErrInsufficientStock):
		return "insufficient_stock"
	case apperrors.Is(err, book.ErrBookNotFound):
		return "book_not_found"
	}
	if appErr := apperrors.GetAppError(err); appErr.Status() < 500 {
		return "validation"
	}
	return "internal"
}
