package book

import (
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// 图书领域错误定义
var (
	ErrBookNotFound      = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")
	ErrISBNDuplicate     = apperrors.New(apperrors.ErrCodeISBNDuplicate, "Book with this ISBN already exists")
	ErrInvalidPrice      = apperrors.New(apperrors.ErrCodeValidation, "price must be a positive number")
	ErrInvalidStock      = apperrors.New(apperrors.ErrCodeValidation, "stock_qty must be greater than or equal to 0")
	ErrInvalidQuantity   = apperrors.New(apperrors.ErrCodeValidation, "quantity must be greater than 0")
	ErrInvalidRating     = apperrors.New(apperrors.ErrCodeValidation, "rating must be between 1 and 5")
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "Insufficient stock")

	ErrAuthorNotFound     = apperrors.New(apperrors.ErrCodeInvalidReference, "One or more authors do not exist")
	ErrCategoryReference  = apperrors.New(apperrors.ErrCodeInvalidReference, "One or more categories do not exist")
	ErrPublisherNotFound  = apperrors.New(apperrors.ErrCodeInvalidReference, "Publisher does not exist")
	ErrPublisherDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Publisher with this name already exists")
)
