// Package logger 封装zap，提供进程级结构化日志
//
// 用法：
//
//	log, err := logger.New(logger.Config{Level: "info", Format: "json"})
//	logger.ReplaceGlobals(log)
//	logger.L().Info("server started", zap.Int("port", 8080))
package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDKey 请求ID在gin.Context / context.Context中的键
const RequestIDKey = "request_id"

// Config 日志配置
type Config struct {
	Level  string // debug/info/warn/error
	Format string // json/console
}

// New 根据配置构建zap.Logger
// json格式使用生产配置（ISO8601时间），console格式使用开发配置（彩色级别）
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build(zap.AddStacktrace(zapcore.ErrorLevel))
}

// ReplaceGlobals 设置进程级Logger，返回恢复函数
func ReplaceGlobals(l *zap.Logger) func() {
	return zap.ReplaceGlobals(l)
}

// L 返回进程级Logger（未初始化时为zap的no-op Logger）
func L() *zap.Logger {
	return zap.L()
}

// WithContext 返回附带request_id字段的Logger
func WithContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return zap.L()
	}
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		return zap.L().With(zap.String(RequestIDKey, id))
	}
	return zap.L()
}
