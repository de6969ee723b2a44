//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// main.go中的newApp是手写的等价组装；修改依赖关系后可运行
// `wire gen ./cmd/api` 生成wire_gen.go对照检查。

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookstore-admin/internal/application/book"
	appcategory "github.com/xiebiao/bookstore-admin/internal/application/category"
	appdashboard "github.com/xiebiao/bookstore-admin/internal/application/dashboard"
	apporder "github.com/xiebiao/bookstore-admin/internal/application/order"
	appuser "github.com/xiebiao/bookstore-admin/internal/application/user"
	"github.com/xiebiao/bookstore-admin/internal/domain/dashboard"
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
)

// infrastructureSet 数据库、Redis、消息队列
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	provideEventPublisher,
	redis.NewTokenBlacklist,
	redis.NewDashboardCache,
	wire.Bind(new(user.TokenBlacklist), new(*redis.TokenBlacklist)),
	wire.Bind(new(dashboard.Cache), new(*redis.DashboardCache)),
	wire.Bind(new(dashboard.StatsInvalidator), new(*redis.DashboardCache)),
)

// repositorySet 仓储与事务管理器
var repositorySet = wire.NewSet(
	rdb.NewUserRepository,
	rdb.NewBookRepository,
	rdb.NewAuthorRepository,
	rdb.NewPublisherRepository,
	rdb.NewCategoryRepository,
	rdb.NewOrderRepository,
	rdb.NewDashboardRepository,
	rdb.NewTxManager,
	wire.Bind(new(apporder.Transactor), new(*rdb.TxManager)),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	newBookService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewGetProfileUseCase,
	appuser.NewUpdateProfileUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewChangeRoleUseCase,
	appuser.NewAuthenticateUseCase,

	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewCreateReviewUseCase,
	appbook.NewListAuthorsUseCase,
	appbook.NewCreateAuthorUseCase,
	appbook.NewListPublishersUseCase,
	appbook.NewCreatePublisherUseCase,

	appcategory.NewListCategoriesUseCase,
	appcategory.NewGetCategoryUseCase,
	appcategory.NewCreateCategoryUseCase,
	appcategory.NewUpdateCategoryUseCase,
	appcategory.NewDeleteCategoryUseCase,

	apporder.NewCreateOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewUpdateStatusUseCase,
	apporder.NewCancelOrderUseCase,

	provideGetStatsUseCase,
	appdashboard.NewSalesTrendsUseCase,
	appdashboard.NewCustomerAnalyticsUseCase,
)

// interfaceSet 中间件、处理器、路由
var interfaceSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	wire.Bind(new(middleware.Authenticator), new(*appuser.AuthenticateUseCase)),
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewCategoryHandler,
	handler.NewOrderHandler,
	handler.NewDashboardHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := rdb.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = rdb.Close(db) }, nil
}

func provideRedis(cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func provideEventPublisher(cfg *config.Config, log *zap.Logger, cache *redis.DashboardCache) (order.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return messaging.NewLocalPublisher(messaging.NewOrderEventHandler(cache, log), log), func() {}, nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, mq.ExchangeTopic, log)
	if err != nil {
		return nil, nil, err
	}
	return messaging.NewOrderEventPublisher(publisher, log), func() { _ = publisher.Close() }, nil
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideGetStatsUseCase(repo dashboard.Repository, cache dashboard.Cache, cfg *config.Config, log *zap.Logger) *appdashboard.GetStatsUseCase {
	return appdashboard.NewGetStatsUseCase(repo, cache, cfg.Cache.DashboardTTL, log)
}

// InitializeEngine 生成与newApp等价的Gin引擎（不含管理员初始化与Tracer）
func InitializeEngine(cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
