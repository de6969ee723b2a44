package user

import (
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// 用户领域错误定义
var (
	ErrUserNotFound       = apperrors.New(apperrors.ErrCodeUserNotFound, "User not found")
	ErrEmailDuplicate     = apperrors.New(apperrors.ErrCodeEmailDuplicate, "User already exists with this email")
	ErrInvalidCredentials = apperrors.ErrInvalidCredentials
	ErrInvalidRole        = apperrors.New(apperrors.ErrCodeBadRequest, "Invalid role")
	ErrAccessDenied       = apperrors.ErrForbidden

	// ErrTargetUserNotFound 管理员操作的目标用户不存在（404），区别于当前登录用户不存在（401）
	ErrTargetUserNotFound = apperrors.New(apperrors.ErrCodeNotFound, "User not found")
)
