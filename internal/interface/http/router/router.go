// Package router 组装Gin引擎：全局中间件、公开/登录/管理员路由分组
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// Handlers 路由需要的全部处理器
type Handlers struct {
	User      *handler.UserHandler
	Book      *handler.BookHandler
	Category  *handler.CategoryHandler
	Order     *handler.OrderHandler
	Dashboard *handler.DashboardHandler
}

// New 创建Gin引擎并注册路由
// 中间件顺序：Recovery → 请求日志 → 指标 → CORS → 全局限流
func New(cfg *config.Config, log *zap.Logger, h Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
	)

	generalMax, authMax := cfg.RateLimit.Limits(cfg.Server.IsDevelopment())
	if cfg.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit.Window, generalMax).Middleware())
	}

	r.GET("/health", health(cfg))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	requireAuth := auth.RequireAuth()
	requireAdmin := auth.RequireAdmin()

	// 认证
	authGroup := v1.Group("/auth")
	if cfg.RateLimit.Enabled {
		authGroup.Use(middleware.NewRateLimiter(cfg.RateLimit.Window, authMax).Middleware())
	}
	{
		authGroup.POST("/register", h.User.Register)
		authGroup.POST("/login", h.User.Login)
		authGroup.POST("/refresh", h.User.Refresh)
		authGroup.POST("/logout", requireAuth, h.User.Logout)
		authGroup.GET("/me", requireAuth, h.User.Me)
		authGroup.PUT("/me", requireAuth, h.User.UpdateProfile)
	}

	v1.PUT("/users/:id/role", requireAuth, requireAdmin, h.User.ChangeRole)

	// 图书
	books := v1.Group("/books")
	{
		books.GET("", h.Book.ListBooks)
		books.GET("/:id", h.Book.GetBook)
		books.POST("", requireAuth, requireAdmin, h.Book.CreateBook)
		books.PUT("/:id", requireAuth, requireAdmin, h.Book.UpdateBook)
		books.DELETE("/:id", requireAuth, requireAdmin, h.Book.DeleteBook)
		books.POST("/:id/reviews", requireAuth, h.Book.CreateReview)
	}

	v1.GET("/authors", h.Book.ListAuthors)
	v1.POST("/authors", requireAuth, requireAdmin, h.Book.CreateAuthor)
	v1.GET("/publishers", h.Book.ListPublishers)
	v1.POST("/publishers", requireAuth, requireAdmin, h.Book.CreatePublisher)

	// 分类
	categories := v1.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", requireAuth, requireAdmin, h.Category.Create)
		categories.PUT("/:id", requireAuth, requireAdmin, h.Category.Update)
		categories.DELETE("/:id", requireAuth, requireAdmin, h.Category.Delete)
	}

	// 订单（全部需要登录，归属校验在用例内完成）
	orders := v1.Group("/orders")
	orders.Use(requireAuth)
	{
		orders.POST("", h.Order.CreateOrder)
		orders.GET("", h.Order.ListOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.PUT("/:id/status", requireAdmin, h.Order.UpdateStatus)
		orders.DELETE("/:id", h.Order.CancelOrder)
	}

	// 仪表盘
	dashboard := v1.Group("/dashboard")
	dashboard.Use(requireAuth, requireAdmin)
	{
		dashboard.GET("/stats", h.Dashboard.Stats)
		dashboard.GET("/sales-trends", h.Dashboard.SalesTrends)
		dashboard.GET("/customer-analytics", h.Dashboard.CustomerAnalytics)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound.WithMessage("Route not found"))
	})

	return r
}

func health(cfg *config.Config) gin.HandlerFunc {
	env := environment(cfg.Server.Mode)
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Server is running",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": env,
		})
	}
}

func environment(mode string) string {
	switch mode {
	case gin.ReleaseMode:
		return "production"
	case gin.TestMode:
		return "test"
	default:
		return "development"
	}
}
