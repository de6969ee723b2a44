package user

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
)

// GetProfileUseCase 查询当前用户资料
type GetProfileUseCase struct {
	userRepo user.Repository
}

// NewGetProfileUseCase 创建查询资料用例
func NewGetProfileUseCase(userRepo user.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

// Execute 用户不存在返回ErrUserNotFound
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*UserResponse, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := NewUserResponse(u)
	return &resp, nil
}

// UpdateProfileUseCase 修改当前用户资料（姓名、地址、电话）
type UpdateProfileUseCase struct {
	userRepo user.Repository
}

// NewUpdateProfileUseCase 创建修改资料用例
func NewUpdateProfileUseCase(userRepo user.Repository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userRepo: userRepo}
}

// UpdateProfileRequest nil字段表示不修改
type UpdateProfileRequest struct {
	UserID  uint
	Name    *string
	Address *string
	Phone   *string
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, req UpdateProfileRequest) (*UserResponse, error) {
	u, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	u.UpdateProfile(req.Name, req.Address, req.Phone)
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	resp := NewUserResponse(u)
	return &resp, nil
}
