package user

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	"github.com/xiebiao/bookstore-admin/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 1. 验证邮箱密码
// 2. 生成JWT Token对
type LoginUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
}

// Execute 执行登录，邮箱不存在或密码错误均返回ErrInvalidCredentials（401）
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := uc.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateToken(u.ID)
	if err != nil {
		return nil, err
	}

	return newAuthResponse(u, pair), nil
}
