package user

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
)

// ChangeRoleUseCase 管理员修改用户角色
type ChangeRoleUseCase struct {
	userRepo user.Repository
}

// NewChangeRoleUseCase 创建修改角色用例
func NewChangeRoleUseCase(userRepo user.Repository) *ChangeRoleUseCase {
	return &ChangeRoleUseCase{userRepo: userRepo}
}

// ChangeRoleRequest 修改角色请求
type ChangeRoleRequest struct {
	UserID uint
	Role   string
}

// Execute 目标用户不存在返回404，角色非法返回400
func (uc *ChangeRoleUseCase) Execute(ctx context.Context, req ChangeRoleRequest) (*UserResponse, error) {
	u, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		if user.ErrUserNotFound.Is(err) {
			return nil, user.ErrTargetUserNotFound
		}
		return nil, err
	}

	if err := u.ChangeRole(user.Role(req.Role)); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	resp := NewUserResponse(u)
	return &resp, nil
}
