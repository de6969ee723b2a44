package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/jwt"
)

// RefreshTokenUseCase 用Refresh Token换取新的Token对
// Refresh Token只能使用一次：换取成功后旧Token加入黑名单
type RefreshTokenUseCase struct {
	userRepo   user.Repository
	jwtManager *jwt.Manager
	blacklist  user.TokenBlacklist
}

// NewRefreshTokenUseCase 创建刷新Token用例
func NewRefreshTokenUseCase(userRepo user.Repository, jwtManager *jwt.Manager, blacklist user.TokenBlacklist) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{userRepo: userRepo, jwtManager: jwtManager, blacklist: blacklist}
}

// Execute 校验Refresh Token
// 已登出或已使用过的Token返回ErrInvalidToken，用户已不存在时拒绝刷新
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	revoked, err := uc.blacklist.Contains(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrInvalidToken
	}

	if _, err := uc.userRepo.FindByID(ctx, claims.UserID); err != nil {
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateToken(claims.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.blacklist.Add(ctx, refreshToken, claims.RemainingTTL(time.Now())); err != nil {
		return nil, err
	}
	return pair, nil
}
