package user

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/jwt"
)

// AuthenticateUseCase 鉴权中间件使用：校验Access Token并加载当前用户
// 每次请求都重新读取用户，角色变更和账号删除立即生效
type AuthenticateUseCase struct {
	userRepo   user.Repository
	jwtManager *jwt.Manager
	blacklist  user.TokenBlacklist
}

// NewAuthenticateUseCase 创建鉴权用例
func NewAuthenticateUseCase(userRepo user.Repository, jwtManager *jwt.Manager, blacklist user.TokenBlacklist) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// Execute 返回当前用户
// - 已登出、格式错误、签名错误、过期：ErrInvalidToken（403）
// - 用户不存在：ErrUserNotFound（401）
func (uc *AuthenticateUseCase) Execute(ctx context.Context, accessToken string) (*user.User, error) {
	revoked, err := uc.blacklist.Contains(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrInvalidToken
	}

	claims, err := uc.jwtManager.ParseToken(accessToken)
	if err != nil {
		return nil, err
	}

	return uc.userRepo.FindByID(ctx, claims.UserID)
}
