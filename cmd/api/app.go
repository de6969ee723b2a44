package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookstore-admin/internal/application/book"
	appcategory "github.com/xiebiao/bookstore-admin/internal/application/category"
	appdashboard "github.com/xiebiao/bookstore-admin/internal/application/dashboard"
	apporder "github.com/xiebiao/bookstore-admin/internal/application/order"
	appuser "github.com/xiebiao/bookstore-admin/internal/application/user"
	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/category"
	"github.com/xiebiao/bookstore-admin/internal/domain/order"
	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/messaging"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/rdb"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/router"
	"github.com/xiebiao/bookstore-admin/pkg/jwt"
	"github.com/xiebiao/bookstore-admin/pkg/mq"
	"github.com/xiebiao/bookstore-admin/pkg/tracing"
)

// app 组装完成的服务及其需要按序释放的资源
type app struct {
	engine  *gin.Engine
	closers []closer
}

type closer struct {
	name string
	fn   func(ctx context.Context) error
}

func (a *app) addCloser(name string, fn func(ctx context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

// close 按与打开相反的顺序释放：MQ → Tracer → Redis → DB
func (a *app) close(log *zap.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(context.Background()); err != nil {
			log.Warn("close resource failed", zap.String("resource", c.name), zap.Error(err))
		}
	}
}

// newApp 手动依赖注入
// 依赖链：Repository ← Service ← UseCase ← Handler ← Router
// wire.go中声明了同样的Provider集合，可用wire生成等价代码
func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.close(log)
		}
	}()

	// 基础设施层
	db, err := rdb.NewDB(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	a.addCloser("database", func(context.Context) error { return rdb.Close(db) })

	redisClient, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}
	a.addCloser("redis", func(context.Context) error { return redisClient.Close() })

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		a.addCloser("tracer", shutdown)
	}

	dashboardCache := redis.NewDashboardCache(redisClient)
	events, err := newOrderEventPublisher(cfg, log, a, dashboardCache)
	if err != nil {
		return nil, err
	}

	userRepo := rdb.NewUserRepository(db)
	bookRepo := rdb.NewBookRepository(db)
	authorRepo := rdb.NewAuthorRepository(db)
	publisherRepo := rdb.NewPublisherRepository(db)
	categoryRepo := rdb.NewCategoryRepository(db)
	orderRepo := rdb.NewOrderRepository(db)
	dashboardRepo := rdb.NewDashboardRepository(db)
	txManager := rdb.NewTxManager(db)

	blacklist := redis.NewTokenBlacklist(redisClient)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := newBookService(publisherRepo, authorRepo, categoryRepo)

	// 启动时确保管理员账号存在
	if err := appuser.NewBootstrapAdminUseCase(userService, log).
		Execute(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	// 接口层
	handlers := router.Handlers{
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService, jwtManager),
			appuser.NewLoginUseCase(userService, jwtManager),
			appuser.NewGetProfileUseCase(userRepo),
			appuser.NewUpdateProfileUseCase(userRepo),
			appuser.NewRefreshTokenUseCase(userRepo, jwtManager, blacklist),
			appuser.NewLogoutUseCase(jwtManager, blacklist),
			appuser.NewChangeRoleUseCase(userRepo),
		),
		Book: handler.NewBookHandler(
			appbook.NewListBooksUseCase(bookRepo),
			appbook.NewGetBookUseCase(bookRepo),
			appbook.NewCreateBookUseCase(bookRepo, bookService, dashboardCache),
			appbook.NewUpdateBookUseCase(bookRepo, bookService, dashboardCache),
			appbook.NewDeleteBookUseCase(bookRepo, dashboardCache),
			appbook.NewCreateReviewUseCase(bookRepo),
			appbook.NewListAuthorsUseCase(authorRepo),
			appbook.NewCreateAuthorUseCase(authorRepo),
			appbook.NewListPublishersUseCase(publisherRepo),
			appbook.NewCreatePublisherUseCase(publisherRepo),
		),
		Category: handler.NewCategoryHandler(
			appcategory.NewListCategoriesUseCase(categoryRepo),
			appcategory.NewGetCategoryUseCase(categoryRepo),
			appcategory.NewCreateCategoryUseCase(categoryRepo, dashboardCache),
			appcategory.NewUpdateCategoryUseCase(categoryRepo, dashboardCache),
			appcategory.NewDeleteCategoryUseCase(categoryRepo, dashboardCache),
		),
		Order: handler.NewOrderHandler(
			apporder.NewCreateOrderUseCase(orderRepo, bookRepo, txManager, events, log),
			apporder.NewListOrdersUseCase(orderRepo),
			apporder.NewGetOrderUseCase(orderRepo),
			apporder.NewUpdateStatusUseCase(orderRepo, bookRepo, txManager, events, log),
			apporder.NewCancelOrderUseCase(orderRepo, bookRepo, txManager, events, log),
		),
		Dashboard: handler.NewDashboardHandler(
			appdashboard.NewGetStatsUseCase(dashboardRepo, dashboardCache, cfg.Cache.DashboardTTL, log),
			appdashboard.NewSalesTrendsUseCase(dashboardRepo),
			appdashboard.NewCustomerAnalyticsUseCase(dashboardRepo),
		),
	}
	authMiddleware := middleware.NewAuthMiddleware(appuser.NewAuthenticateUseCase(userRepo, jwtManager, blacklist))

	a.engine = router.New(cfg, log, handlers, authMiddleware)
	return a, nil
}

// newBookService 出版社、作者、分类仓储都实现了book.IDCounter
func newBookService(publishers book.PublisherRepository, authors book.AuthorRepository, categories category.Repository) book.Service {
	return book.NewService(publishers, authors, categories)
}

// newOrderEventPublisher mq.enabled=false时事件在进程内处理（删除统计缓存）
func newOrderEventPublisher(cfg *config.Config, log *zap.Logger, a *app, cache *redis.DashboardCache) (order.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return messaging.NewLocalPublisher(messaging.NewOrderEventHandler(cache, log), log), nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, mq.ExchangeTopic, log)
	if err != nil {
		return nil, fmt.Errorf("init mq publisher: %w", err)
	}
	a.addCloser("mq", func(context.Context) error { return publisher.Close() })

	return messaging.NewOrderEventPublisher(publisher, log), nil
}
