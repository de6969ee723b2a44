package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	metrics.InitMetrics()
	os.Exit(m.Run())
}

type fakeAuthenticator struct {
	users map[string]*user.User
	err   error
}

func (f fakeAuthenticator) Execute(_ context.Context, token string) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[token]
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}
	return u, nil
}

func serve(r *gin.Engine, method, path string, header map[string]string) (*httptest.ResponseRecorder, response.Response) {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuthMiddleware(t *testing.T) {
	customer := &user.User{ID: 1, Name: "Alice", Role: user.RoleCustomer}
	admin := &user.User{ID: 2, Name: "Root", Role: user.RoleAdmin}
	m := NewAuthMiddleware(fakeAuthenticator{users: map[string]*user.User{
		"customer-token": customer,
		"admin-token":    admin,
	}})

	r := gin.New()
	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": MustGetUser(c).ID, "token": GetToken(c), "admin": GetActor(c).IsAdmin()})
	})
	r.GET("/admin", m.RequireAuth(), m.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("缺少Authorization返回401", func(t *testing.T) {
		w, body := serve(r, http.MethodGet, "/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Access token required", body.Message)
	})

	t.Run("非Bearer格式返回401", func(t *testing.T) {
		w, _ := serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Basic abc"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("无效Token返回403", func(t *testing.T) {
		w, body := serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer forged"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Invalid or expired token", body.Message)
	})

	t.Run("有效Token注入当前用户", func(t *testing.T) {
		w, _ := serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer customer-token"})
		require.Equal(t, http.StatusOK, w.Code)

		var got struct {
			ID    uint   `json:"id"`
			Token string `json:"token"`
			Admin bool   `json:"admin"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, uint(1), got.ID)
		assert.Equal(t, "customer-token", got.Token)
		assert.False(t, got.Admin)
	})

	t.Run("普通用户访问管理员接口返回403", func(t *testing.T) {
		w, body := serve(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer customer-token"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Admin access required", body.Message)
	})

	t.Run("管理员放行", func(t *testing.T) {
		w, _ := serve(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer admin-token"})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("黑名单服务异常返回500", func(t *testing.T) {
		failing := NewAuthMiddleware(fakeAuthenticator{err: apperrors.ErrRedisError})
		r := gin.New()
		r.GET("/me", failing.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

		w, _ := serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer anything"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("超出窗口额度返回429", func(t *testing.T) {
		rl := NewRateLimiter(time.Minute, 2)
		r := gin.New()
		r.Use(rl.Middleware())
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 2; i++ {
			w, _ := serve(r, http.MethodGet, "/", nil)
			require.Equal(t, http.StatusOK, w.Code)
		}

		w, body := serve(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "Too many requests, please try again later", body.Message)
	})

	t.Run("按IP独立计数", func(t *testing.T) {
		rl := NewRateLimiter(time.Minute, 1)
		assert.True(t, rl.Allow("10.0.0.1"))
		assert.False(t, rl.Allow("10.0.0.1"))
		assert.True(t, rl.Allow("10.0.0.2"))
	})
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w, body := serve(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestRequestLogger(t *testing.T) {
	var fromCtx string
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		fromCtx, _ = c.Request.Context().Value(logger.RequestIDKey).(string)
		c.Status(http.StatusOK)
	})

	t.Run("生成请求ID并写入响应头", func(t *testing.T) {
		w, _ := serve(r, http.MethodGet, "/", nil)
		id := w.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, fromCtx)
	})

	t.Run("沿用上游请求ID", func(t *testing.T) {
		w, _ := serve(r, http.MethodGet, "/", map[string]string{RequestIDHeader: "req-123"})
		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-123", fromCtx)
	})
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w, _ := serve(r, http.MethodGet, "/books/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = serve(r, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
