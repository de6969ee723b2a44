package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功，密码已加密，角色为customer", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByEmail", ctx, "alice@example.com").Return(nil, ErrUserNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)

		svc := NewServiceWithCost(repo, bcrypt.MinCost)
		u, err := svc.Register(ctx, "Alice", " Alice@Example.com ", "secret1", "", "")
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", u.Email)
		assert.Equal(t, RoleCustomer, u.Role)
		assert.NotEqual(t, "secret1", u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
		repo.AssertExpectations(t)
	})

	t.Run("邮箱重复返回冲突且不写库", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByEmail", ctx, "bob@example.com").Return(&User{ID: 9, Email: "bob@example.com"}, nil)

		svc := NewServiceWithCost(repo, bcrypt.MinCost)
		_, err := svc.Register(ctx, "Bob", "bob@example.com", "secret1", "", "")

		assert.ErrorIs(t, err, ErrEmailDuplicate)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("并发注册由唯一索引兜底", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByEmail", ctx, "carol@example.com").Return(nil, ErrUserNotFound)
		repo.On("Create", ctx, mock.Anything).Return(ErrEmailDuplicate)

		svc := NewServiceWithCost(repo, bcrypt.MinCost)
		_, err := svc.Register(ctx, "Carol", "carol@example.com", "secret1", "", "")
		assert.ErrorIs(t, err, ErrEmailDuplicate)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &User{ID: 3, Email: "dave@example.com", PasswordHash: string(hash), Role: RoleCustomer}

	repo := new(mockRepo)
	repo.On("FindByEmail", ctx, "dave@example.com").Return(stored, nil)
	repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, ErrUserNotFound)
	svc := NewServiceWithCost(repo, bcrypt.MinCost)

	t.Run("密码正确", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "dave@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, uint(3), u.ID)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "dave@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("邮箱不存在与密码错误返回同一错误", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("已有普通用户被提升为管理员", func(t *testing.T) {
		existing := &User{ID: 5, Email: "root@example.com", Role: RoleCustomer}
		repo := new(mockRepo)
		repo.On("FindByEmail", ctx, "root@example.com").Return(existing, nil)
		repo.On("Update", ctx, existing).Return(nil)

		u, err := NewServiceWithCost(repo, bcrypt.MinCost).EnsureAdmin(ctx, "Root", "root@example.com", "pw")
		require.NoError(t, err)
		assert.True(t, u.IsAdmin())
		repo.AssertExpectations(t)
	})

	t.Run("不存在则创建", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByEmail", ctx, "root@example.com").Return(nil, ErrUserNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool { return u.Role == RoleAdmin })).Return(nil)

		u, err := NewServiceWithCost(repo, bcrypt.MinCost).EnsureAdmin(ctx, "Root", "root@example.com", "pw")
		require.NoError(t, err)
		assert.True(t, u.IsAdmin())
	})
}

func TestActor_CanAccess(t *testing.T) {
	owner := Actor{ID: 1, Role: RoleCustomer}
	other := Actor{ID: 2, Role: RoleCustomer}
	admin := Actor{ID: 3, Role: RoleAdmin}

	assert.True(t, owner.CanAccess(1))
	assert.False(t, other.CanAccess(1))
	assert.True(t, admin.CanAccess(1))
	assert.ErrorIs(t, other.Authorize(1), ErrAccessDenied)
	assert.False(t, Actor{}.CanAccess(0))
}
