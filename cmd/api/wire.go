//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 与main.go里的手动组装等价;运行 `wire gen ./cmd/api`
// 生成wire_gen.go后,main可以切换到InitializeServer()
package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookstore-admin/internal/application/book"
	apppurchase "github.com/xiebiao/bookstore-admin/internal/application/purchase"
	appsales "github.com/xiebiao/bookstore-admin/internal/application/sales"
	appuser "github.com/xiebiao/bookstore-admin/internal/application/user"
	"github.com/xiebiao/bookstore-admin/internal/domain/associate"
	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/master"
	"github.com/xiebiao/bookstore-admin/internal/domain/stock"
	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/event"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-admin/pkg/jwt"
)

// provideJWTManager 从配置构造JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

// providePublisher 事件发布器;MQ不可用时降级为Nop
func providePublisher(cfg *config.Config) event.Publisher {
	if !cfg.MQ.Enabled {
		return event.NewNopPublisher()
	}
	p, err := event.NewAMQPPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		log.Printf("连接RabbitMQ失败(事件发布降级): %v", err)
		return event.NewNopPublisher()
	}
	return p
}

// provideEngine 组装Gin引擎与全部路由
func provideEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	salesHandler *handler.SalesHandler,
	purchaseHandler *handler.PurchaseHandler,
	masterHandler *handler.MasterHandler,
	associateHandler *handler.AssociateHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	registerRoutes(r, cfg, userHandler, bookHandler, salesHandler, purchaseHandler, masterHandler, associateHandler, authMiddleware)
	return r
}

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	redis.NewSessionStore,
	redis.NewStockCache,
	provideJWTManager,
	providePublisher,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewSalesRepository,
	mysql.NewPurchaseRepository,
	mysql.NewAssociateRepository,
	mysql.NewBookTypeRepository,
	mysql.NewFieldOfStudyRepository,
	mysql.NewCityRepository,
	mysql.NewPublisherRepository,
	mysql.NewExpeditionRepository,
	mysql.NewTxManager,
	wire.Bind(new(appsales.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apppurchase.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	associate.NewService,
	master.NewService,
	stock.NewGuard,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewRegisterUseCase,
	appbook.NewManageBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewGetStockUseCase,
	appsales.NewCreateSalesUseCase,
	appsales.NewUpdateSalesUseCase,
	appsales.NewDeleteSalesUseCase,
	appsales.NewGetSalesUseCase,
	appsales.NewListSalesUseCase,
	appsales.NewAddPaymentUseCase,
	appsales.NewRemovePaymentUseCase,
	appsales.NewSaveShippingUseCase,
	appsales.NewRemoveShippingUseCase,
	appsales.NewExportInvoiceUseCase,
	apppurchase.NewCreatePurchaseUseCase,
	apppurchase.NewUpdatePurchaseUseCase,
	apppurchase.NewDeletePurchaseUseCase,
	apppurchase.NewCompletePurchaseUseCase,
	apppurchase.NewCancelPurchaseUseCase,
	apppurchase.NewGetPurchaseUseCase,
	apppurchase.NewListPurchaseUseCase,
)

// interfaceSet 接口层依赖
var interfaceSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewSalesHandler,
	handler.NewPurchaseHandler,
	handler.NewMasterHandler,
	handler.NewAssociateHandler,
	middleware.NewAuthMiddleware,
	provideEngine,
)

// InitializeServer 构造完整的HTTP服务
func InitializeServer() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil
}
