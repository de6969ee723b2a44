package dto

import "strings"

// RegisterRequest HTTP层注册请求
// 说明：HTTP层的DTO，包含参数验证tag
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=150"`
	Email    string `json:"email" binding:"required,email,max=150"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Address  string `json:"address" binding:"max=500"`
	Phone    string `json:"phone" binding:"max=20"`
}

// ApplyDefaults 去除首尾空白，邮箱统一小写
func (r *RegisterRequest) ApplyDefaults() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Address = strings.TrimSpace(r.Address)
	r.Phone = strings.TrimSpace(r.Phone)
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) ApplyDefaults() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// UpdateProfileRequest 修改资料，未出现的字段保持不变
type UpdateProfileRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=150"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
}

func (r *UpdateProfileRequest) ApplyDefaults() {
	for _, p := range []*string{r.Name, r.Address, r.Phone} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}

// RefreshTokenRequest 刷新Token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest 登出，可选携带Refresh Token一并注销
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangeRoleRequest 管理员修改角色
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=customer admin"`
}
