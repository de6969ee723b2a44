package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/domain/order"
)

type fakeInvalidator struct {
	calls int
	err   error
}

func (f *fakeInvalidator) Invalidate(context.Context) error {
	f.calls++
	return f.err
}

func encodeEvent(t *testing.T, typ string) []byte {
	t.Helper()
	o := &order.Order{ID: 9, OrderNo: "ORD9", Status: order.StatusCancelled}
	raw, err := json.Marshal(order.NewEvent(typ, o, order.StatusPending))
	require.NoError(t, err)
	return raw
}

func TestOrderEventHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("订单事件删除统计缓存", func(t *testing.T) {
		cache := &fakeInvalidator{}
		h := NewOrderEventHandler(cache, zap.NewNop())

		require.NoError(t, h.Handle(ctx, order.EventCancelled, encodeEvent(t, order.EventCancelled)))
		assert.Equal(t, 1, cache.calls)
	})

	t.Run("缓存删除失败返回错误以便重投", func(t *testing.T) {
		cache := &fakeInvalidator{err: errors.New("redis down")}
		h := NewOrderEventHandler(cache, zap.NewNop())

		assert.Error(t, h.Handle(ctx, order.EventCreated, encodeEvent(t, order.EventCreated)))
	})

	t.Run("无法解析的消息直接确认", func(t *testing.T) {
		cache := &fakeInvalidator{}
		h := NewOrderEventHandler(cache, zap.NewNop())

		assert.NoError(t, h.Handle(ctx, "order.created", []byte("{not json")))
		assert.Zero(t, cache.calls)
	})

	t.Run("未知事件类型忽略", func(t *testing.T) {
		cache := &fakeInvalidator{}
		h := NewOrderEventHandler(cache, zap.NewNop())

		assert.NoError(t, h.Handle(ctx, "order.archived", encodeEvent(t, "order.archived")))
		assert.Zero(t, cache.calls)
	})
}
