package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/jwt"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

type mockService struct {
	mock.Mock
}

func (m *mockService) Register(ctx context.Context, name, email, password, address, phone string) (*user.User, error) {
	args := m.Called(ctx, name, email, password, address, phone)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockService) EnsureAdmin(ctx context.Context, name, email, password string) (*user.User, error) {
	args := m.Called(ctx, name, email, password)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

// memBlacklist 内存黑名单
type memBlacklist struct {
	tokens map[string]time.Duration
	err    error
}

func newMemBlacklist() *memBlacklist {
	return &memBlacklist{tokens: map[string]time.Duration{}}
}

func (b *memBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if b.err != nil {
		return b.err
	}
	if ttl > 0 {
		b.tokens[token] = ttl
	}
	return nil
}

func (b *memBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	if b.err != nil {
		return false, b.err
	}
	_, ok := b.tokens[token]
	return ok, nil
}

func newJWT() *jwt.Manager {
	return jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
}

func TestRegisterUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功返回Token对且不含密码", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Register", ctx, "Alice", "alice@example.com", "secret1", "", "").
			Return(&user.User{ID: 1, Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Role: user.RoleCustomer}, nil)

		resp, err := NewRegisterUseCase(svc, newJWT()).Execute(ctx, RegisterRequest{
			Name: "Alice", Email: "alice@example.com", Password: "secret1",
		})
		require.NoError(t, err)
		assert.Equal(t, "customer", resp.User.Role)
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, int64(3600), resp.ExpiresIn)
	})

	t.Run("邮箱重复", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Register", ctx, "Bob", "bob@example.com", "secret1", "", "").Return(nil, user.ErrEmailDuplicate)

		_, err := NewRegisterUseCase(svc, newJWT()).Execute(ctx, RegisterRequest{
			Name: "Bob", Email: "bob@example.com", Password: "secret1",
		})
		assert.ErrorIs(t, err, user.ErrEmailDuplicate)
	})
}

func TestLoginUseCase_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := new(mockService)
	svc.On("Authenticate", ctx, "a@example.com", "bad").Return(nil, user.ErrInvalidCredentials)

	_, err := NewLoginUseCase(svc, newJWT()).Execute(ctx, LoginRequest{Email: "a@example.com", Password: "bad"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestAuthenticateUseCase(t *testing.T) {
	ctx := context.Background()
	jm := newJWT()
	pair, err := jm.GenerateToken(5)
	require.NoError(t, err)

	t.Run("合法Token返回最新的用户信息", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByID", ctx, uint(5)).Return(&user.User{ID: 5, Role: user.RoleAdmin}, nil)

		u, err := NewAuthenticateUseCase(repo, jm, newMemBlacklist()).Execute(ctx, pair.AccessToken)
		require.NoError(t, err)
		assert.True(t, u.IsAdmin())
	})

	t.Run("已登出的Token", func(t *testing.T) {
		repo := new(mockRepo)
		bl := newMemBlacklist()
		require.NoError(t, NewLogoutUseCase(jm, bl).Execute(ctx, LogoutRequest{AccessToken: pair.AccessToken}))
		assert.InDelta(t, time.Hour.Seconds(), bl.tokens[pair.AccessToken].Seconds(), 5)

		_, err := NewAuthenticateUseCase(repo, jm, bl).Execute(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("用户已不存在", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByID", ctx, uint(5)).Return(nil, user.ErrUserNotFound)

		_, err := NewAuthenticateUseCase(repo, jm, newMemBlacklist()).Execute(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("黑名单不可用", func(t *testing.T) {
		bl := newMemBlacklist()
		bl.err = apperrors.ErrRedisError.WithErr(errors.New("connection refused"))

		_, err := NewAuthenticateUseCase(new(mockRepo), jm, bl).Execute(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrRedisError)
	})
}

func TestRefreshTokenUseCase(t *testing.T) {
	ctx := context.Background()
	jm := newJWT()

	t.Run("Access Token不能用于刷新", func(t *testing.T) {
		pair, err := jm.GenerateToken(9)
		require.NoError(t, err)

		_, err = NewRefreshTokenUseCase(new(mockRepo), jm, newMemBlacklist()).Execute(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("刷新成功后旧Refresh Token失效", func(t *testing.T) {
		pair, err := jm.GenerateToken(9)
		require.NoError(t, err)
		repo := new(mockRepo)
		repo.On("FindByID", ctx, uint(9)).Return(&user.User{ID: 9}, nil)
		uc := NewRefreshTokenUseCase(repo, jm, newMemBlacklist())

		refreshed, err := uc.Execute(ctx, pair.RefreshToken)
		require.NoError(t, err)
		claims, err := jm.ParseToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(9), claims.UserID)

		_, err = uc.Execute(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

		_, err = uc.Execute(ctx, refreshed.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("登出后Refresh Token不能再换取Token", func(t *testing.T) {
		pair, err := jm.GenerateToken(9)
		require.NoError(t, err)
		bl := newMemBlacklist()
		repo := new(mockRepo)

		require.NoError(t, NewLogoutUseCase(jm, bl).Execute(ctx, LogoutRequest{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		}))
		assert.InDelta(t, (24 * time.Hour).Seconds(), bl.tokens[pair.RefreshToken].Seconds(), 5)

		_, err = NewRefreshTokenUseCase(repo, jm, bl).Execute(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("黑名单不可用", func(t *testing.T) {
		pair, err := jm.GenerateToken(9)
		require.NoError(t, err)
		bl := newMemBlacklist()
		bl.err = apperrors.ErrRedisError.WithErr(errors.New("connection refused"))

		_, err = NewRefreshTokenUseCase(new(mockRepo), jm, bl).Execute(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrRedisError)
	})
}

func TestLogoutUseCase_RefreshTokenOfAnotherUser(t *testing.T) {
	ctx := context.Background()
	jm := newJWT()
	mine, err := jm.GenerateToken(1)
	require.NoError(t, err)
	other, err := jm.GenerateToken(2)
	require.NoError(t, err)
	bl := newMemBlacklist()

	err = NewLogoutUseCase(jm, bl).Execute(ctx, LogoutRequest{
		AccessToken:  mine.AccessToken,
		RefreshToken: other.RefreshToken,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	assert.Empty(t, bl.tokens)
}

func TestUpdateProfileUseCase(t *testing.T) {
	ctx := context.Background()
	existing := &user.User{ID: 2, Name: "Old", Phone: "123"}
	repo := new(mockRepo)
	repo.On("FindByID", ctx, uint(2)).Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)

	name := "New"
	resp, err := NewUpdateProfileUseCase(repo).Execute(ctx, UpdateProfileRequest{UserID: 2, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", resp.Name)
	assert.Equal(t, "123", resp.Phone)
}

func TestChangeRoleUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("目标用户不存在返回404", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByID", ctx, uint(3)).Return(nil, user.ErrUserNotFound)

		_, err := NewChangeRoleUseCase(repo).Execute(ctx, ChangeRoleRequest{UserID: 3, Role: "admin"})
		assert.ErrorIs(t, err, user.ErrTargetUserNotFound)
		assert.Equal(t, 404, apperrors.GetAppError(err).Status())
	})

	t.Run("非法角色", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByID", ctx, uint(3)).Return(&user.User{ID: 3, Role: user.RoleCustomer}, nil)

		_, err := NewChangeRoleUseCase(repo).Execute(ctx, ChangeRoleRequest{UserID: 3, Role: "root"})
		assert.ErrorIs(t, err, user.ErrInvalidRole)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestBootstrapAdminUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("未配置邮箱时跳过", func(t *testing.T) {
		svc := new(mockService)
		require.NoError(t, NewBootstrapAdminUseCase(svc, zap.NewNop()).Execute(ctx, "Admin", "", ""))
		svc.AssertNotCalled(t, "EnsureAdmin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("创建管理员", func(t *testing.T) {
		svc := new(mockService)
		svc.On("EnsureAdmin", ctx, "Admin", "root@example.com", "pw").
			Return(&user.User{ID: 1, Email: "root@example.com", Role: user.RoleAdmin}, nil)
		require.NoError(t, NewBootstrapAdminUseCase(svc, zap.NewNop()).Execute(ctx, "Admin", "root@example.com", "pw"))
		svc.AssertExpectations(t)
	})
}
