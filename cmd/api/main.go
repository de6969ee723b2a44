// @title           Bookstore Admin API
// @version         1.0
// @description     书店管理后台：认证、图书目录、分类、订单与仪表盘
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     格式：Bearer <token>
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/xiebiao/bookstore-admin/docs"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
	"github.com/xiebiao/bookstore-admin/pkg/validation"
)

//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../docs

func main() {
	// 1. 加载配置（此时zap尚未初始化，失败用标准库log退出）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zl, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	undo := logger.ReplaceGlobals(zl)
	defer undo()

	if err := run(cfg, zl); err != nil {
		zl.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}

// run 组装依赖、启动HTTP服务，收到SIGINT/SIGTERM后优雅退出
func run(cfg *config.Config, log *zap.Logger) error {
	validation.Install()
	metrics.InitMetrics()

	ctx := context.Background()
	app, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.close(log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started",
			zap.String("addr", srv.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.String("database", cfg.Database.Driver),
			zap.Bool("mq", cfg.MQ.Enabled),
			zap.Bool("tracing", cfg.Tracing.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
