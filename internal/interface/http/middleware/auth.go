package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// Context中的键
const (
	ctxUserKey  = "current_user"
	ctxTokenKey = "access_token"
)

// Authenticator 校验Access Token并返回当前用户（由AuthenticateUseCase实现）
type Authenticator interface {
	Execute(ctx context.Context, accessToken string) (*user.User, error)
}

// AuthMiddleware JWT认证中间件
// 1. 从Header提取Bearer Token
// 2. 校验黑名单、签名、有效期
// 3. 每次请求重新读取用户（角色变更、账号删除立即生效）
// 4. 将用户信息注入Context
type AuthMiddleware struct {
	authenticator Authenticator
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.GET("/auth/me", handler.Me)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, apperrors.ErrTokenRequired)
			return
		}

		u, err := m.authenticator.Execute(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(ctxUserKey, u)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

// RequireAdmin 要求管理员，必须放在RequireAuth之后
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := GetUser(c)
		if u == nil || !u.IsAdmin() {
			response.Error(c, apperrors.ErrAdminOnly)
			return
		}
		c.Next()
	}
}

// bearerToken 格式：Authorization: Bearer <token>
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUser 当前登录用户，未登录返回nil
func GetUser(c *gin.Context) *user.User {
	if v, exists := c.Get(ctxUserKey); exists {
		if u, ok := v.(*user.User); ok {
			return u
		}
	}
	return nil
}

// GetActor 当前操作者身份，未登录返回零值（不具备任何权限）
func GetActor(c *gin.Context) user.Actor {
	if u := GetUser(c); u != nil {
		return u.Actor()
	}
	return user.Actor{}
}

// MustGetUser 从Context获取用户（如果不存在则panic）
// 说明：用于已经通过RequireAuth中间件的Handler
func MustGetUser(c *gin.Context) *user.User {
	u := GetUser(c)
	if u == nil {
		panic("current user not found in context")
	}
	return u
}

// GetToken 当前请求携带的Access Token（登出时加入黑名单）
func GetToken(c *gin.Context) string {
	return c.GetString(ctxTokenKey)
}
