package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// DefaultBcryptCost 生产环境使用的bcrypt cost
const DefaultBcryptCost = 12

// Service 用户领域服务：注册、认证、密码哈希
type Service interface {
	// Register 注册新用户（角色固定为customer）
	Register(ctx context.Context, name, email, password, address, phone string) (*User, error)

	// Authenticate 校验邮箱和密码，失败统一返回ErrInvalidCredentials
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// EnsureAdmin 管理员账号不存在时创建，已存在时确保角色为admin
	EnsureAdmin(ctx context.Context, name, email, password string) (*User, error)
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return NewServiceWithCost(repo, DefaultBcryptCost)
}

// NewServiceWithCost 指定bcrypt cost（测试中使用bcrypt.MinCost）
func NewServiceWithCost(repo Repository, cost int) Service {
	return &service{repo: repo, cost: cost}
}

// Register 用户注册
// 1. 邮箱统一小写
// 2. 先查重返回友好的409；并发注册由UNIQUE索引兜底，同样返回ErrEmailDuplicate
// 3. 密码bcrypt加密
func (s *service) Register(ctx context.Context, name, email, password, address, phone string) (*User, error) {
	email = normalizeEmail(email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailDuplicate
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	u := NewUser(name, email, hash, address, phone)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate 用户登录校验
// 邮箱不存在与密码错误返回同一个错误，避免暴露账号是否存在
func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "failed to verify password")
	}

	return u, nil
}

func (s *service) EnsureAdmin(ctx context.Context, name, email, password string) (*User, error) {
	email = normalizeEmail(email)

	u, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if u.IsAdmin() {
			return u, nil
		}
		if err := u.ChangeRole(RoleAdmin); err != nil {
			return nil, err
		}
		return u, s.repo.Update(ctx, u)
	case !errors.Is(err, ErrUserNotFound):
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	u = NewUser(name, email, hash, "", "")
	u.Role = RoleAdmin
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return string(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
