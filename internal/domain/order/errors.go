package order

import (
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound           = apperrors.New(apperrors.ErrCodeOrderNotFound, "Order not found")
	ErrInvalidStatus           = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "Invalid status")
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "Order status does not allow this operation")
	ErrNotCancellable          = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "Order cannot be cancelled")
	ErrEmptyItems              = apperrors.New(apperrors.ErrCodeValidation, "Order must contain at least one item")
	ErrInvalidQuantity         = apperrors.New(apperrors.ErrCodeValidation, "quantity must be greater than 0")
)
