// worker 订单事件消费者：订单变化后刷新仪表盘统计缓存
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/messaging"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
	"github.com/xiebiao/bookstore-admin/pkg/mq"
)

const queueName = "bookstore.dashboard.order_events"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Error("worker exited with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	redisClient, err := redis.NewClient(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, mq.ExchangeTopic, queueName, messaging.OrderEventRoutingKeys, log)
	if err != nil {
		return err
	}
	defer func() { _ = consumer.Close() }()

	handler := messaging.NewOrderEventHandler(redis.NewDashboardCache(redisClient), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("worker started", zap.String("exchange", cfg.MQ.Exchange), zap.String("queue", queueName))
	return consumer.Consume(ctx, func(routingKey string, body []byte) error {
		return handler.Handle(ctx, routingKey, body)
	})
}
