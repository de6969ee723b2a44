package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// Recovery panic转换为500统一响应，错误详情由response.Error记录日志
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		response.Error(c, apperrors.ErrInternal.WithErr(fmt.Errorf("panic: %v", recovered)))
	})
}
