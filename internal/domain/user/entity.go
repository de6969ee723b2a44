package user

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User 用户实体（聚合根）
// 1. PasswordHash为bcrypt哈希值，序列化到响应时由DTO层剔除
// 2. 用户不会被物理删除
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Address      string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser 创建新用户（工厂方法），注册用户一律为customer
func NewUser(name, email, passwordHash, address, phone string) *User {
	now := time.Now()
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleCustomer,
		Address:      address,
		Phone:        phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Actor 返回当前用户作为操作者的身份
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

// UpdateProfile 更新资料，nil表示不修改该字段
func (u *User) UpdateProfile(name, address, phone *string) {
	if name != nil {
		u.Name = *name
	}
	if address != nil {
		u.Address = *address
	}
	if phone != nil {
		u.Phone = *phone
	}
	u.UpdatedAt = time.Now()
}

// ChangeRole 修改角色
func (u *User) ChangeRole(role Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}
