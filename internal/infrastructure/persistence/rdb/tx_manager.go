package rdb

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager 事务管理器
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB，Repository用getDB(ctx)取出
// 3. 嵌套调用时GORM自动使用Savepoint
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务，fn返回error时ROLLBACK，返回nil时COMMIT
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    book, err := bookRepo.LockByID(ctx, bookID)
//	    ...
//	    return bookRepo.UpdateStock(ctx, bookID, -quantity)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.Transaction(func(nested *gorm.DB) error {
			return fn(context.WithValue(ctx, txKey{}, nested))
		})
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// txFromContext 返回context中的事务DB，没有事务时返回普通连接
func txFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
