package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-admin/pkg/response"
	"github.com/xiebiao/bookstore-admin/pkg/validation"
)

// bindJSON 绑定并校验请求体，失败时已写入400响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ValidationFailed(c, validation.Translate(err))
		return false
	}
	return true
}

// bindQuery 绑定并校验查询参数
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.ValidationFailed(c, validation.Translate(err))
		return false
	}
	return true
}

// pathID 解析路径中的正整数ID
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ValidationFailed(c, validation.Errors{{Field: name, Message: name + " must be a positive integer"}})
		return 0, false
	}
	return uint(id), true
}

// parseDate 已通过datetime=2006-01-02校验，空串返回nil
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// parseDecimal 已通过numeric校验，空串返回nil
func parseDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
