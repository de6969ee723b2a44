package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
)

// BootstrapAdminUseCase 启动时确保配置的管理员账号存在
type BootstrapAdminUseCase struct {
	userService user.Service
	log         *zap.Logger
}

// NewBootstrapAdminUseCase 创建管理员初始化用例
func NewBootstrapAdminUseCase(userService user.Service, log *zap.Logger) *BootstrapAdminUseCase {
	return &BootstrapAdminUseCase{userService: userService, log: log}
}

// Execute email为空时跳过
func (uc *BootstrapAdminUseCase) Execute(ctx context.Context, name, email, password string) error {
	if email == "" {
		return nil
	}

	u, err := uc.userService.EnsureAdmin(ctx, name, email, password)
	if err != nil {
		return err
	}

	uc.log.Info("admin account ready", zap.Uint("user_id", u.ID), zap.String("email", u.Email))
	return nil
}
