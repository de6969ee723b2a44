package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNo 生成订单号
// 格式：ORD + 秒级时间戳 + 6位随机数，例如 ORD1760832000123456
// 数据库UNIQUE索引兜底，冲突概率极低
func GenerateOrderNo() string {
	return fmt.Sprintf("ORD%d%06d", time.Now().Unix(), rand.Intn(1000000))
}
