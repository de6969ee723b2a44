package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// Overview 总览数据
type Overview struct {
	TotalCustomers  int64           `json:"total_customers"`
	TotalBooks      int64           `json:"total_books"`
	TotalOrders     int64           `json:"total_orders"`
	TotalCategories int64           `json:"total_categories"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
}

// MonthlySales 月度销售
type MonthlySales struct {
	Month       string          `json:"month"`
	OrderCount  int64           `json:"order_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// StatusCount 订单状态分布
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CategoryCount 分类下图书数量
type CategoryCount struct {
	Name      string `json:"name"`
	BookCount int64  `json:"book_count"`
}

// TopBook 畅销图书
type TopBook struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	TotalSold    int64           `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// RecentOrder 最近订单
type RecentOrder struct {
	ID            uint            `json:"id"`
	OrderNo       string          `json:"order_no"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LowStockBook 低库存图书
type LowStockBook struct {
	ID       uint            `json:"id"`
	Title    string          `json:"title"`
	StockQty int             `json:"stock_qty"`
	Price    decimal.Decimal `json:"price"`
}

// Stats 仪表盘汇总
type Stats struct {
	Overview             Overview        `json:"overview"`
	MonthlySales         []MonthlySales  `json:"monthly_sales"`
	OrderStatus          []StatusCount   `json:"order_status"`
	CategoryDistribution []CategoryCount `json:"category_distribution"`
	TopBooks             []TopBook       `json:"top_books"`
	RecentOrders         []RecentOrder   `json:"recent_orders"`
	LowStockBooks        []LowStockBook  `json:"low_stock_books"`
}

// Period 销售趋势的时间粒度
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod 非法值回退到month
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s)
	default:
		return PeriodMonth
	}
}

// Since 覆盖最近limit个周期的起始时间
func (p Period) Since(now time.Time, limit int) time.Time {
	switch p {
	case PeriodDay:
		return now.AddDate(0, 0, -limit)
	case PeriodWeek:
		return now.AddDate(0, 0, -7*limit)
	case PeriodYear:
		return now.AddDate(-limit, 0, 0)
	default:
		return now.AddDate(0, -limit, 0)
	}
}

// TrendPoint 销售趋势中的一个时间段
type TrendPoint struct {
	Period          string          `json:"period"`
	OrderCount      int64           `json:"order_count"`
	Revenue         decimal.Decimal `json:"revenue"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"`
	UniqueCustomers int64           `json:"unique_customers"`
}

// Registration 月度注册人数
type Registration struct {
	Month        string `json:"month"`
	NewCustomers int64  `json:"new_customers"`
}

// TopCustomer 消费排行
type TopCustomer struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	OrderCount    int64           `json:"order_count"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LastOrderDate *time.Time      `json:"last_order_date"`
}

// ActivityBucket 客户活跃度分布
type ActivityBucket struct {
	Level         string `json:"activity_level"`
	CustomerCount int64  `json:"customer_count"`
}

// CustomerAnalytics 客户分析
type CustomerAnalytics struct {
	RegistrationTrends   []Registration   `json:"registration_trends"`
	TopCustomers         []TopCustomer    `json:"top_customers"`
	ActivityDistribution []ActivityBucket `json:"activity_distribution"`
}
