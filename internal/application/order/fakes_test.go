package order

import (
	"context"
	"sync"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/order"
)

// memStore 内存版图书/订单存储，Transaction出错时整体回滚
type memStore struct {
	mu      sync.Mutex
	books   map[uint]*book.Book
	orders  map[uint]*order.Order
	nextID  uint
	locked  []uint // LockByID调用顺序
	deleted map[uint]bool
}

func newMemStore(books ...*book.Book) *memStore {
	s := &memStore{
		books:   map[uint]*book.Book{},
		orders:  map[uint]*order.Order{},
		nextID:  1,
		deleted: map[uint]bool{},
	}
	for _, b := range books {
		s.books[b.ID] = b
	}
	return s
}

func (s *memStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	stock := make(map[uint]int, len(s.books))
	for id, b := range s.books {
		stock[id] = b.StockQty
	}
	orders := make(map[uint]order.Order, len(s.orders))
	for id, o := range s.orders {
		orders[id] = *o
	}

	if err := fn(ctx); err != nil {
		for id, b := range s.books {
			b.StockQty = stock[id]
		}
		s.orders = make(map[uint]*order.Order, len(orders))
		for id := range orders {
			o := orders[id]
			s.orders[id] = &o
		}
		return err
	}
	return nil
}

func (s *memStore) stock(id uint) int {
	return s.books[id].StockQty
}

type memBookRepo struct {
	book.Repository
	s *memStore
}

func (r memBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	r.s.locked = append(r.s.locked, id)
	b, ok := r.s.books[id]
	if !ok || r.s.deleted[id] {
		return nil, book.ErrBookNotFound.WithMessage("Book %d not found", id)
	}
	cp := *b
	return &cp, nil
}

func (r memBookRepo) UpdateStock(ctx context.Context, id uint, delta int) error {
	b, ok := r.s.books[id]
	if !ok || r.s.deleted[id] {
		return book.ErrBookNotFound
	}
	if b.StockQty+delta < 0 {
		return book.ErrInsufficientStock
	}
	b.StockQty += delta
	return nil
}

// RestoreStock 与数据库实现一致，软删除的图书同样归还
func (r memBookRepo) RestoreStock(ctx context.Context, id uint, qty int) error {
	b, ok := r.s.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.StockQty += qty
	return nil
}

// Delete 软删除：记录仍在，普通查询不可见
func (r memBookRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.s.books[id]; !ok || r.s.deleted[id] {
		return book.ErrBookNotFound
	}
	r.s.deleted[id] = true
	return nil
}

type memOrderRepo struct {
	s *memStore
}

func (r memOrderRepo) Create(ctx context.Context, o *order.Order) error {
	o.ID = r.s.nextID
	r.s.nextID++
	cp := *o
	cp.Items = append([]order.OrderItem(nil), o.Items...)
	r.s.orders[o.ID] = &cp
	return nil
}

func (r memOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r memOrderRepo) LockByID(ctx context.Context, id uint) (*order.Order, error) {
	return r.FindByID(ctx, id)
}

func (r memOrderRepo) UpdateStatus(ctx context.Context, id uint, status order.Status) error {
	o, ok := r.s.orders[id]
	if !ok {
		return order.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (r memOrderRepo) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	var out []*order.Order
	for _, o := range r.s.orders {
		if params.UserID != nil && o.UserID != *params.UserID {
			continue
		}
		if params.Status != nil && o.Status != *params.Status {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

type recordingPublisher struct {
	events []order.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event order.Event) error {
	p.events = append(p.events, event)
	return p.err
}
