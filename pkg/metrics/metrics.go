// Package metrics 基于Prometheus的指标收集
//
// 指标类型：
//   - Counter：只增不减的累计值，如请求数、订单数
//   - Gauge：可增可减的瞬时值，如处理中的请求数
//   - Histogram：观测值分布，如请求耗时（可计算P50/P90/P99）
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds）。
// 标签只使用有限取值的维度（method、路由模板、status），不要用user_id。
//
// 使用：
//
//	metrics.InitMetrics()
//	router.Use(middleware.Metrics())
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/v1/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 订单业务指标

	// OrdersCreatedTotal 订单创建成功总数
	OrdersCreatedTotal prometheus.Counter

	// OrdersFailedTotal 订单创建失败总数
	// 标签：reason（insufficient_stock/book_not_found/validation/internal）
	OrdersFailedTotal *prometheus.CounterVec

	// OrdersCancelledTotal 订单取消总数
	OrdersCancelledTotal prometheus.Counter

	// OrderCreationDuration 订单创建耗时（含事务）
	OrderCreationDuration prometheus.Histogram

	// OrdersInProgress 正在创建的订单数
	OrdersInProgress prometheus.Gauge

	// 熔断器指标

	// CircuitBreakerState 熔断器状态 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求数
	// 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布数
	// 标签：exchange、routing_key、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化并注册所有指标到默认Registry，重复调用无副作用
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		OrdersCreatedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "订单创建总数",
			},
		)

		OrdersFailedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_failed_total",
				Help: "订单创建失败总数",
			},
			[]string{"reason"},
		)

		OrdersCancelledTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_cancelled_total",
				Help: "订单取消总数",
			},
		)

		// 订单创建包含行锁等待，桶的上限放宽到10秒
		OrderCreationDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "order_creation_duration_seconds",
				Help:    "订单创建耗时（秒）",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		)

		OrdersInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "orders_in_progress",
				Help: "正在创建的订单数",
			},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)

		CircuitBreakerRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_requests_total",
				Help: "熔断器请求总数",
			},
			[]string{"name", "result"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"exchange", "routing_key", "result"},
		)
	})
}

// ObserveHTTPRequest 记录一次HTTP请求
func ObserveHTTPRequest(method, path, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObserveOrderCreated 记录一次成功的下单
func ObserveOrderCreated(seconds float64) {
	OrdersCreatedTotal.Inc()
	OrderCreationDuration.Observe(seconds)
}

// ObserveOrderFailed 记录一次失败的下单
func ObserveOrderFailed(reason string, seconds float64) {
	OrdersFailedTotal.WithLabelValues(reason).Inc()
	OrderCreationDuration.Observe(seconds)
}

// SetCircuitBreakerState 更新熔断器状态
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// IncCircuitBreakerRequest 记录熔断器请求结果
func IncCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// IncMessagePublished 记录消息发布结果
func IncMessagePublished(exchange, routingKey, result string) {
	MessagesPublishedTotal.WithLabelValues(exchange, routingKey, result).Inc()
}
