package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，HTTP状态码由Code所在区间推导（见HTTPStatus）
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
// 4. Details携带字段级错误等结构化信息（可选）
type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Err     error       `json:"-"`
	Details interface{} `json:"details,omitempty"`

	origin *AppError // WithMessage/WithErr复制出的错误指向原始的预定义错误
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 预定义错误被WithMessage/WithErr复制后仍能与原错误匹配
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.root() == t.root()
}

func (e *AppError) root() *AppError {
	if e.origin != nil {
		return e.origin
	}
	return e
}

// Status 返回该错误对应的HTTP状态码
func (e *AppError) Status() int {
	return HTTPStatus(e.Code)
}

// WithMessage 复制错误并替换提示信息，预定义错误本身不被修改
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	cp := *e
	cp.origin = e.root()
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// WithDetails 复制错误并附加结构化详情
func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.origin = e.root()
	cp.Details = details
	return &cp
}

// WithErr 复制错误并附加内部错误
func (e *AppError) WithErr(err error) *AppError {
	cp := *e
	cp.origin = e.root()
	cp.Err = err
	return &cp
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：错误码前三位即HTTP状态码
// - 400xx: 参数校验、业务规则
// - 401xx: 未认证
// - 403xx: 无权限
// - 404xx: 资源不存在
// - 409xx: 唯一约束冲突
// - 429xx: 限流
// - 5xxxx: 服务端错误

const (
	// 系统级错误码
	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeRedisError    = 50002

	// 参数与业务规则（400）
	ErrCodeValidation         = 40000
	ErrCodeInsufficientStock  = 40001
	ErrCodeInvalidOrderStatus = 40002
	ErrCodeCategoryInUse      = 40003
	ErrCodeInvalidReference   = 40004
	ErrCodeBadRequest         = 40005

	// 认证（401）
	ErrCodeUnauthorized       = 40100
	ErrCodeInvalidCredentials = 40101
	ErrCodeUserNotFound       = 40102
	ErrCodeTokenRequired      = 40103

	// 授权（403）
	ErrCodeForbidden    = 40300
	ErrCodeInvalidToken = 40301
	ErrCodeAdminOnly    = 40302

	// 资源不存在（404）
	ErrCodeNotFound          = 40400
	ErrCodeBookNotFound      = 40401
	ErrCodeOrderNotFound     = 40402
	ErrCodeCategoryNotFound  = 40403
	ErrCodeAuthorNotFound    = 40404
	ErrCodePublisherNotFound = 40405

	// 唯一约束冲突（409）
	ErrCodeDuplicateEntry    = 40900
	ErrCodeEmailDuplicate    = 40901
	ErrCodeISBNDuplicate     = 40902
	ErrCodeCategoryDuplicate = 40903

	// 限流（429）
	ErrCodeTooManyRequests = 42900
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	ErrInternal      = New(ErrCodeInternal, "Internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database error")
	ErrRedisError    = New(ErrCodeRedisError, "Cache service error")

	ErrValidation = New(ErrCodeValidation, "Validation failed")
	ErrBadRequest = New(ErrCodeBadRequest, "Bad request")

	ErrUnauthorized       = New(ErrCodeUnauthorized, "Unauthorized")
	ErrTokenRequired      = New(ErrCodeTokenRequired, "Access token required")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "Invalid or expired token")
	ErrForbidden          = New(ErrCodeForbidden, "Access denied")
	ErrAdminOnly          = New(ErrCodeAdminOnly, "Admin access required")

	ErrNotFound       = New(ErrCodeNotFound, "Resource not found")
	ErrDuplicateEntry = New(ErrCodeDuplicateEntry, "Duplicate entry")

	ErrTooManyRequests = New(ErrCodeTooManyRequests, "Too many requests, please try again later")
)

// =========================================
// 辅助函数
// =========================================

// HTTPStatus 根据错误码区间推导HTTP状态码
func HTTPStatus(code int) int {
	switch code / 100 {
	case 400:
		return http.StatusBadRequest
	case 401:
		return http.StatusUnauthorized
	case 403:
		return http.StatusForbidden
	case 404:
		return http.StatusNotFound
	case 409:
		return http.StatusConflict
	case 429:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}

// Is 透传标准库errors.Is，便于调用方只引入本包
func Is(err, target error) bool {
	return errors.Is(err, target)
}
