package rdb

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
)

// 方言名称，与gorm.Dialector.Name()一致
const (
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
)

// NewDB 创建数据库连接
// 1. 按database.driver选择MySQL或PostgreSQL驱动
// 2. TranslateError让唯一约束冲突统一为gorm.ErrDuplicatedKey
// 3. 配置连接池参数并Ping
// 4. database.auto_migrate为true时自动迁移表结构
//
// 返回的*gorm.DB由main显式传给各Repository，退出时调用Close关闭
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.IsDevelopment() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector(cfg.Database), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("database connected",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	if err := setupJoinTables(db); err != nil {
		return nil, fmt.Errorf("setup join tables: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	return db, nil
}

func dialector(d config.DatabaseConfig) gorm.Dialector {
	if d.Driver == DialectPostgres {
		return postgres.Open(d.DSN())
	}
	return mysql.Open(d.DSN())
}

// setupJoinTables 为多对多关联注册自定义关联表模型
func setupJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&BookModel{}, "Authors", &BookAuthorModel{}); err != nil {
		return err
	}
	return db.SetupJoinTable(&BookModel{}, "Categories", &BookCategoryModel{})
}

// AutoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段和索引，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	if err := setupJoinTables(db); err != nil {
		return err
	}

	return db.AutoMigrate(
		&UserModel{},
		&AuthorModel{},
		&PublisherModel{},
		&CategoryModel{},
		&BookModel{},
		&BookAuthorModel{},
		&BookCategoryModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ReviewModel{},
	)
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
