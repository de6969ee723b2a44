package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/jwt"
)

// LogoutUseCase 用户登出用例
// 1. 当前Access Token加入黑名单，有效期为Token剩余寿命
// 2. 同时提交了Refresh Token时一并加入黑名单，登出后不能再换取新Token
type LogoutUseCase struct {
	jwtManager *jwt.Manager
	blacklist  user.TokenBlacklist
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, blacklist user.TokenBlacklist) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, blacklist: blacklist}
}

// LogoutRequest 登出请求，RefreshToken可为空
type LogoutRequest struct {
	AccessToken  string
	RefreshToken string
}

// Execute 执行登出
// Refresh Token必须属于同一用户；已失效的Refresh Token本身无法再使用，直接忽略
func (uc *LogoutUseCase) Execute(ctx context.Context, req LogoutRequest) error {
	now := time.Now()
	claims, err := uc.jwtManager.ParseToken(req.AccessToken)
	if err != nil {
		return err
	}

	if req.RefreshToken != "" {
		refreshClaims, err := uc.jwtManager.ParseRefreshToken(req.RefreshToken)
		if err == nil {
			if refreshClaims.UserID != claims.UserID {
				return apperrors.ErrInvalidToken
			}
			if err := uc.blacklist.Add(ctx, req.RefreshToken, refreshClaims.RemainingTTL(now)); err != nil {
				return err
			}
		}
	}

	return uc.blacklist.Add(ctx, req.AccessToken, claims.RemainingTTL(now))
}
