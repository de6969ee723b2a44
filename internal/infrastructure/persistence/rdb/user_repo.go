package rdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// userRepository 用户仓储GORM实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// getDB 从context获取事务DB，如果没有则使用默认DB
func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	return txFromContext(ctx, r.db)
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	m := userToModel(u)
	if err := r.getDB(ctx).Create(m).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.ErrDatabaseError.WithErr(err)
	}
	u.ID = m.ID
	u.CreatedAt, u.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var m UserModel
	if err := r.getDB(ctx).First(&m, id).Error; err != nil {
		if isNotFound(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return userToEntity(&m), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var m UserModel
	if err := r.getDB(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return userToEntity(&m), nil
}

// Update 只更新资料和角色，不触碰邮箱与密码
// MySQL在值未变化时RowsAffected为0，存在性由调用方先行查询保证
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	err := r.getDB(ctx).Model(&UserModel{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"name":       u.Name,
		"address":    u.Address,
		"phone":      u.Phone,
		"role":       string(u.Role),
		"updated_at": u.UpdatedAt,
	}).Error
	if err != nil {
		return apperrors.ErrDatabaseError.WithErr(err)
	}
	return nil
}

func userToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Address:      u.Address,
		Phone:        u.Phone,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func userToEntity(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         user.Role(m.Role),
		Address:      m.Address,
		Phone:        m.Phone,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
