package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

const issuer = "bookstore-admin"

// TokenType 区分访问令牌与刷新令牌，刷新令牌不能用于API鉴权
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Manager JWT管理器
// 1. Access Token用于API鉴权，有效期由配置决定（默认7天）
// 2. Refresh Token只用于换取新的Access Token
type Manager struct {
	secret             []byte
	accessTokenExpire  time.Duration
	refreshTokenExpire time.Duration
	now                func() time.Time
}

// NewManager 创建JWT管理器
func NewManager(secret string, accessTokenExpire, refreshTokenExpire time.Duration) *Manager {
	return &Manager{
		secret:             []byte(secret),
		accessTokenExpire:  accessTokenExpire,
		refreshTokenExpire: refreshTokenExpire,
		now:                time.Now,
	}
}

// Claims 自定义JWT Claims，只携带用户ID，角色每次请求从数据库重新读取
type Claims struct {
	UserID uint      `json:"user_id"`
	Type   TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair Token对（Access + Refresh）
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token有效期（秒）
}

// GenerateToken 生成Token对
func (m *Manager) GenerateToken(userID uint) (*TokenPair, error) {
	access, err := m.sign(userID, AccessToken, m.accessTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign access token")
	}

	refresh, err := m.sign(userID, RefreshToken, m.refreshTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign refresh token")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTokenExpire.Seconds()),
	}, nil
}

func (m *Manager) sign(userID uint, typ TokenType, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        uuid.NewString(), // jti：同一秒内签发的Token也互不相同
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseToken 解析并验证Access Token
// 签名错误、过期、类型不符一律返回ErrInvalidToken（403）
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, AccessToken)
}

// ParseRefreshToken 解析并验证Refresh Token
func (m *Manager) ParseRefreshToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, RefreshToken)
}

func (m *Manager) parse(tokenString string, want TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))

	if err != nil {
		return nil, apperrors.ErrInvalidToken.WithErr(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Type != want || claims.UserID == 0 {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// RefreshAccessToken 使用Refresh Token换取新的Access Token
func (m *Manager) RefreshAccessToken(refreshToken string) (*TokenPair, error) {
	claims, err := m.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	access, err := m.sign(claims.UserID, AccessToken, m.accessTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to refresh token")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(m.accessTokenExpire.Seconds()),
	}, nil
}

// RemainingTTL 返回Token剩余有效期，用于设置黑名单过期时间
func (c *Claims) RemainingTTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := c.ExpiresAt.Time.Sub(now); d > 0 {
		return d
	}
	return 0
}
