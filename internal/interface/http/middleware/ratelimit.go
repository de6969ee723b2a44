package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// RateLimiter 按客户端IP限流（令牌桶）
// 每个窗口补充max个令牌，桶容量为max：窗口内最多max次请求
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	lastGC   time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter window内最多max次请求
func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	if max < 1 {
		max = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(max)),
		burst:    max,
		idleTTL:  window,
		lastGC:   time.Now(),
	}
}

// Allow 该IP是否还有剩余额度
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.limiters[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = v
	}
	v.lastSeen = now

	// 空闲超过一个窗口的IP令牌桶已满，删除不影响限流结果
	if now.Sub(rl.lastGC) > rl.idleTTL {
		for key, other := range rl.limiters {
			if now.Sub(other.lastSeen) > rl.idleTTL {
				delete(rl.limiters, key)
			}
		}
		rl.lastGC = now
	}

	return v.limiter.AllowN(now, 1)
}

// Middleware 超出限额返回429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			response.Error(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
