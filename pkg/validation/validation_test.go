package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemInput struct {
	BookID   uint `json:"book_id" binding:"required,gt=0"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

type orderInput struct {
	Items           []itemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string      `json:"shipping_address" binding:"required,max=500"`
}

type bookInput struct {
	Title    string          `json:"title" binding:"required,min=1,max=255"`
	Price    decimal.Decimal `json:"price" binding:"required,gt=0"`
	StockQty *int            `json:"stock_qty" binding:"omitempty,gte=0"`
}

func (b *bookInput) ApplyDefaults() {
	b.Title = strings.TrimSpace(b.Title)
	b.Price = b.Price.Round(2)
	if b.StockQty == nil {
		zero := 0
		b.StockQty = &zero
	}
}

func fields(errs Errors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestStruct_CollectsAllErrors(t *testing.T) {
	in := &orderInput{
		Items: []itemInput{{BookID: 0, Quantity: 1}, {BookID: 3, Quantity: 0}},
	}

	errs := Struct(in)
	require.Len(t, errs, 3)
	assert.ElementsMatch(t,
		[]string{"items[0].book_id", "items[1].quantity", "shipping_address"},
		fields(errs),
	)
	t.Log("✅ 一次返回全部字段错误")
}

func TestStruct_EmptyItems(t *testing.T) {
	errs := Struct(&orderInput{Items: []itemInput{}, ShippingAddress: "x"})
	require.Len(t, errs, 1)
	assert.Equal(t, "items", errs[0].Field)
	assert.Contains(t, errs[0].Message, "at least 1")
}

func TestStruct_DefaultsAndDecimal(t *testing.T) {
	t.Run("默认值与金额归一化", func(t *testing.T) {
		in := &bookInput{Title: "  Go  ", Price: decimal.RequireFromString("12.499")}
		require.Nil(t, Struct(in))
		assert.Equal(t, "Go", in.Title)
		assert.Equal(t, "12.50", in.Price.StringFixed(2))
		require.NotNil(t, in.StockQty)
		assert.Equal(t, 0, *in.StockQty)
	})

	t.Run("价格必须为正", func(t *testing.T) {
		errs := Struct(&bookInput{Title: "Go", Price: decimal.NewFromInt(-1)})
		require.Len(t, errs, 1)
		assert.Equal(t, "price", errs[0].Field)
	})

	t.Run("库存不能为负", func(t *testing.T) {
		neg := -1
		errs := Struct(&bookInput{Title: "Go", Price: decimal.NewFromInt(1), StockQty: &neg})
		require.Len(t, errs, 1)
		assert.Equal(t, "stock_qty", errs[0].Field)
	})
}

func TestInstall_GinBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Install()

	body := `{"title":"","price":0,"unknown_field":"ignored"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	var in bookInput
	err := c.ShouldBindJSON(&in)
	require.Error(t, err)

	errs := Translate(err)
	assert.ElementsMatch(t, []string{"title", "price"}, fields(errs))
}

func TestTranslate_Malformed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Install()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	var in bookInput
	errs := Translate(c.ShouldBindJSON(&in))
	require.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Field)
}
