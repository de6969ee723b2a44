package user

import (
	"context"
	"time"
)

// Repository 用户仓储接口
// 1. 接口定义在domain层，实现在infrastructure/persistence/rdb
// 2. 邮箱唯一性由数据库UNIQUE索引保证，冲突时返回ErrEmailDuplicate
type Repository interface {
	// Create 创建用户，邮箱已存在返回ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 不存在返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update 更新资料与角色
	Update(ctx context.Context, user *User) error
}

// TokenBlacklist 已注销的Token，实现在infrastructure/persistence/redis
type TokenBlacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}
