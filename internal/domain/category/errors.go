package category

import (
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// 分类领域错误定义
var (
	ErrCategoryNotFound  = apperrors.New(apperrors.ErrCodeCategoryNotFound, "Category not found")
	ErrCategoryDuplicate = apperrors.New(apperrors.ErrCodeCategoryDuplicate, "Category with this name already exists")
	ErrCategoryInUse     = apperrors.New(apperrors.ErrCodeCategoryInUse, "Cannot delete category that has associated books")
)
