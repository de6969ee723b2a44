package user

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	"github.com/xiebiao/bookstore-admin/pkg/jwt"
)

// RegisterUseCase 用户注册用例
// 注册成功即登录，直接返回Token对
type RegisterUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, jwtManager *jwt.Manager) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Address  string
	Phone    string
}

// Execute 执行注册，邮箱重复返回ErrEmailDuplicate（409）
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	u, err := uc.userService.Register(ctx, req.Name, req.Email, req.Password, req.Address, req.Phone)
	if err != nil {
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateToken(u.ID)
	if err != nil {
		return nil, err
	}

	return newAuthResponse(u, pair), nil
}
