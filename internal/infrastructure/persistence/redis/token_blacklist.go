package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// TokenBlacklist JWT黑名单
// JWT是无状态的，服务端无法主动让Token失效；登出时把Token写入黑名单，
// 过期时间与Token剩余有效期一致，Token自然过期后记录随之消失
//
// Key: blacklist:{token}
type TokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist 创建黑名单存储
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Add 将Token加入黑名单，ttl<=0时无需记录（Token已过期）
func (b *TokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithErr(err)
	}
	return nil
}

// Contains 检查Token是否在黑名单中
func (b *TokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.ErrRedisError.WithErr(err)
	}
	return n > 0, nil
}

func blacklistKey(token string) string {
	return "blacklist:" + token
}
