package rdb

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
	"github.com/xiebiao/bookstore-admin/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// soldStatuses 计入销售额的订单状态
var soldStatuses = []string{
	string(order.StatusCompleted),
	string(order.StatusShipped),
	string(order.StatusDelivered),
}

// dashboardRepository 仪表盘只读聚合查询
// 时间分组表达式按方言生成，时间窗口在Go中计算后作为参数绑定
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓储
func NewDashboardRepository(db *gorm.DB) dashboard.Repository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) Overview(ctx context.Context) (dashboard.Overview, error) {
	var out dashboard.Overview
	err := r.getDB(ctx).Raw(`SELECT
		(SELECT COUNT(*) FROM users WHERE role = ?) AS total_customers,
		(SELECT COUNT(*) FROM books WHERE deleted_at IS NULL) AS total_books,
		(SELECT COUNT(*) FROM orders) AS total_orders,
		(SELECT COUNT(*) FROM categories) AS total_categories,
		(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = ?) AS total_revenue`,
		"customer", string(order.StatusCompleted),
	).Scan(&out).Error
	if err != nil {
		return out, apperrors.ErrDatabaseError.WithErr(err)
	}
	return out, nil
}

func (r *dashboardRepository) MonthlySales(ctx context.Context, since time.Time) ([]dashboard.MonthlySales, error) {
	db := r.getDB(ctx)
	sql := fmt.Sprintf(`SELECT %s AS month, COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS total_amount
		FROM orders
		WHERE created_at >= ? AND status IN ?
		GROUP BY 1
		ORDER BY 1`, bucketExpr(db, dashboard.PeriodMonth, "created_at"))

	out := []dashboard.MonthlySales{}
	if err := db.Raw(sql, since, soldStatuses).Scan(&out).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return out, nil
}

func (r *dashboardRepository) OrderStatusDistribution(ctx context.Context) ([]dashboard.StatusCount, error) {
	out := []dashboard.StatusCount{}
	err := r.getDB(ctx).Raw(`SELECT status, COUNT(*) AS count
		FROM orders
		GROUP BY status
		ORDER BY count DESC, status ASC`).Scan(&out).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return out, nil
}

func (r *dashboardRepository) CategoryDistribution(ctx context.Context) ([]dashboard.CategoryCount, error) {
	out := []dashboard.CategoryCount{}
	err := r.getDB(ctx).Raw(`SELECT c.name, COUNT(b.id) AS book_count
		FROM categories c
		LEFT JOIN book_categories bc ON bc.category_id = c.id
		LEFT JOIN books b ON b.id = bc.book_id AND b.deleted_at IS NULL
		GROUP BY c.id, c.name
		ORDER BY book_count DESC, c.name ASC`).Scan(&out).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return out, nil
}

func (r *dashboardRepository) TopBooks(ctx context.Context, limit int) ([]dashboard.TopBook, error) {
	out := []dashboard.TopBook{}
	err := r.getDB(ctx).Raw(`SELECT b.id, b.title, b.price,
			SUM(oi.quantity) AS total_sold,
			SUM(oi.quantity * oi.unit_price) AS total_revenue
		FROM books b
		JOIN order_items oi ON oi.book_id = b.id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status IN ?
		GROUP BY b.id, b.title, b.price
		ORDER BY total_sold DESC, b.id ASC
		LIMIT ?`, soldStatuses, limit).Scan(&out).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return out, nil
}

func (r *dashboardRepository) RecentOrders(ctx context.Context, limit int) ([]dashboard.RecentOrder, error) {
	out := []dashboard.RecentOrder{}
	err := r.getDB(ctx).Raw(`SELECT o.id, o.order_no, o.status, o.total_amount, o.created_at,
			u.name AS customer_name, u.email AS customer_email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ?`, limit).Scan(&out).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return out, nil
}

func (r *dashboardRepository) LowStockBooks(ctx context.Context, threshold, limit int) ([]dashboard.LowStockBook, error) {
	out := []dashboard.LowStockBook{}
	err := r.getDB(ctx).Raw(`SELECT id, title, stock_qty, price
		FROM books
		WHERE deleted_at IS NULL AND stock_qty <= ?
		ORDER BY stock_qty ASC, id ASC
		LIMIT ?`, threshold, limit).Scan(&out).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return out, nil
}

// SalesTrends 按粒度分组的销售趋势，limit由调用方换算成since
func (r *dashboardRepository) SalesTrends(ctx context.Context, period dashboard.Period, since time.Time, limit int) ([]dashboard.TrendPoint, error) {
	db := r.getDB(ctx)
	sql := fmt.Sprintf(`SELECT %s AS period,
			COUNT(*) AS order_count,
			COALESCE(SUM(total_amount), 0) AS revenue,
			COALESCE(AVG(total_amount), 0) AS avg_order_value,
			COUNT(DISTINCT user_id) AS unique_customers
		FROM orders
		WHERE created_at >= ? AND status IN ?
		GROUP BY 1
		ORDER BY 1`, bucketExpr(db, period, "created_at"))

	out := []dashboard.TrendPoint{}
	if err := db.Raw(sql, since, soldStatuses).Scan(&out).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	// 边界上的时间段可能多出一个，只保留最近limit个
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	for i := range out {
		out[i].AvgOrderValue = out[i].AvgOrderValue.Round(2)
	}
	return out, nil
}

func (r *dashboardRepository) RegistrationTrends(ctx context.Context, since time.Time) ([]dashboard.Registration, error) {
	db := r.getDB(ctx)
	sql := fmt.Sprintf(`SELECT %s AS month, COUNT(*) AS new_customers
		FROM users
		WHERE role = ? AND created_at >= ?
		GROUP BY 1
		ORDER BY 1`, bucketExpr(db, dashboard.PeriodMonth, "created_at"))

	out := []dashboard.Registration{}
	if err := db.Raw(sql, "customer", since).Scan(&out).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return out, nil
}

// TopCustomers 按消费金额排序，只统计未取消的订单
func (r *dashboardRepository) TopCustomers(ctx context.Context, limit int) ([]dashboard.TopCustomer, error) {
	out := []dashboard.TopCustomer{}
	err := r.getDB(ctx).Raw(`SELECT u.id, u.name, u.email,
			COUNT(o.id) AS order_count,
			COALESCE(SUM(o.total_amount), 0) AS total_spent,
			MAX(o.created_at) AS last_order_date
		FROM users u
		JOIN orders o ON o.user_id = u.id AND o.status <> ?
		WHERE u.role = ?
		GROUP BY u.id, u.name, u.email
		ORDER BY total_spent DESC, u.id ASC
		LIMIT ?`, string(order.StatusCancelled), "customer", limit).Scan(&out).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return out, nil
}

func (r *dashboardRepository) CustomerOrderCounts(ctx context.Context) ([]int64, error) {
	var out []int64
	err := r.getDB(ctx).Raw(`SELECT COUNT(o.id) AS order_count
		FROM users u
		LEFT JOIN orders o ON o.user_id = u.id AND o.status <> ?
		WHERE u.role = ?
		GROUP BY u.id`, string(order.StatusCancelled), "customer").Scan(&out).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return out, nil
}

func (r *dashboardRepository) getDB(ctx context.Context) *gorm.DB {
	return txFromContext(ctx, r.db)
}

// bucketExpr 生成时间分组表达式，结果为字符串形式的时间段标签
// 周使用ISO周编号，例如2025-W07
func bucketExpr(db *gorm.DB, period dashboard.Period, col string) string {
	if db.Dialector.Name() == DialectPostgres {
		switch period {
		case dashboard.PeriodDay:
			return fmt.Sprintf("TO_CHAR(%s, 'YYYY-MM-DD')", col)
		case dashboard.PeriodWeek:
			return fmt.Sprintf(`TO_CHAR(%s, 'IYYY-"W"IW')`, col)
		case dashboard.PeriodYear:
			return fmt.Sprintf("TO_CHAR(%s, 'YYYY')", col)
		default:
			return fmt.Sprintf("TO_CHAR(%s, 'YYYY-MM')", col)
		}
	}

	switch period {
	case dashboard.PeriodDay:
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m-%%d')", col)
	case dashboard.PeriodWeek:
		return fmt.Sprintf("DATE_FORMAT(%s, '%%x-W%%v')", col)
	case dashboard.PeriodYear:
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y')", col)
	default:
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m')", col)
	}
}
