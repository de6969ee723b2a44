package book

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	t.Run("价格保留两位小数", func(t *testing.T) {
		b, err := NewBook("", "Go", decimal.RequireFromString("12.505"), 3, nil, nil, "", "")
		require.NoError(t, err)
		assert.Equal(t, "12.51", b.Price.StringFixed(2))
	})

	t.Run("价格必须为正", func(t *testing.T) {
		_, err := NewBook("", "Go", decimal.Zero, 3, nil, nil, "", "")
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("库存不能为负", func(t *testing.T) {
		_, err := NewBook("", "Go", decimal.NewFromInt(1), -1, nil, nil, "", "")
		assert.ErrorIs(t, err, ErrInvalidStock)
	})
}

func TestBook_Stock(t *testing.T) {
	b := &Book{Title: "Go", StockQty: 10}

	require.NoError(t, b.DecrStock(2))
	assert.Equal(t, 8, b.StockQty)

	err := b.DecrStock(9)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 8, b.StockQty)

	require.NoError(t, b.IncrStock(2))
	assert.Equal(t, 10, b.StockQty)

	assert.ErrorIs(t, b.IncrStock(0), ErrInvalidQuantity)
	assert.True(t, b.HasStock(10))
	assert.False(t, b.HasStock(11))
}

func TestNewReview(t *testing.T) {
	_, err := NewReview(1, 1, 6, "")
	assert.ErrorIs(t, err, ErrInvalidRating)

	r, err := NewReview(1, 2, 5, "great")
	require.NoError(t, err)
	assert.Equal(t, 5, r.Rating)
}

type countStub map[uint]bool

func (s countStub) CountByIDs(_ context.Context, ids []uint) (int64, error) {
	var n int64
	for _, id := range ids {
		if s[id] {
			n++
		}
	}
	return n, nil
}

func TestService_ValidateReferences(t *testing.T) {
	ctx := context.Background()
	svc := NewService(countStub{1: true}, countStub{1: true, 2: true}, countStub{7: true})
	pub := uint(1)
	missing := uint(9)

	assert.NoError(t, svc.ValidateReferences(ctx, &pub, []uint{1, 2, 2}, []uint{7}))
	assert.NoError(t, svc.ValidateReferences(ctx, nil, nil, nil))
	assert.ErrorIs(t, svc.ValidateReferences(ctx, &missing, nil, nil), ErrPublisherNotFound)
	assert.ErrorIs(t, svc.ValidateReferences(ctx, nil, []uint{1, 3}, nil), ErrAuthorNotFound)
	assert.ErrorIs(t, svc.ValidateReferences(ctx, nil, nil, []uint{8}), ErrCategoryReference)
}
