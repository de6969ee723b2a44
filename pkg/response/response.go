package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
	"go.uber.org/zap"
)

// Response 统一响应信封
// 设计说明：
// 1. Success区分成功/失败，HTTP状态码同时反映结果（200/201/4xx/5xx）
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，Errors是字段级校验错误
// 4. Error仅在开发模式下返回内部错误详情
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK 200成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Created 201成功响应
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Message 仅带提示信息的200响应
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

// OKWithMessage 同时返回提示信息和数据
func OKWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// ValidationFailed 400 + 字段级错误列表
func ValidationFailed(c *gin.Context, errs interface{}) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Success: false,
		Message: apperrors.ErrValidation.Message,
		Errors:  errs,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.Status()

	resp := Response{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Details,
	}

	if status >= http.StatusInternalServerError {
		logger.WithContext(c).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		// 生产环境隐藏内部错误细节
		if gin.Mode() == gin.DebugMode && appErr.Err != nil {
			resp.Error = appErr.Err.Error()
		}
	}

	c.AbortWithStatusJSON(status, resp)
}

// =========================================
// 分页响应结构
// =========================================

// Pagination 分页元信息
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

// PageData 分页数据封装
type PageData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// NewPagination 计算总页数与前后页标记
func NewPagination(total int64, page, pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = 1
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: pageSize,
		HasNext:      page < totalPages,
		HasPrev:      page > 1,
	}
}

// Page 分页成功响应
func Page(c *gin.Context, items interface{}, total int64, page, pageSize int) {
	OK(c, PageData{Items: items, Pagination: NewPagination(total, page, pageSize)})
}
