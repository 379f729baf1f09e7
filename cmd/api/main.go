package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
	"github.com/xiebiao/bookstore-admin/pkg/response"
	"github.com/xiebiao/bookstore-admin/pkg/tracing"
)

// @title           书店后台管理API
// @version         1.0
// @description     销售/采购/库存/基础资料管理后台
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 可观测性(按配置开关)
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			log.Printf("初始化Tracing失败(降级为不追踪): %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(ctx)
			}()
		}
	}

	// 3. 初始化数据库与Redis
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 事件发布器(MQ不可用或未启用时退化为Nop)
	var publisher event.Publisher
	if cfg.MQ.Enabled {
		publisher, err = event.NewAMQPPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Printf("连接RabbitMQ失败(事件发布降级): %v", err)
			publisher = event.NewNopPublisher()
		}
	} else {
		publisher = event.NewNopPublisher()
	}
	defer publisher.Close()

	// 5. 依赖注入(手动组装)
	// Repository → Service/Guard → UseCase → Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	salesRepo := mysql.NewSalesRepository(db)
	purchaseRepo := mysql.NewPurchaseRepository(db)
	associateRepo := mysql.NewAssociateRepository(db)
	bookTypeRepo := mysql.NewBookTypeRepository(db)
	fieldOfStudyRepo := mysql.NewFieldOfStudyRepository(db)
	cityRepo := mysql.NewCityRepository(db)
	publisherRepo := mysql.NewPublisherRepository(db)
	expeditionRepo := mysql.NewExpeditionRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	stockCache := redis.NewStockCache(redisClient)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	associateService := associate.NewService(associateRepo)
	masterService := master.NewService(bookTypeRepo, fieldOfStudyRepo, cityRepo, publisherRepo, expeditionRepo)
	stockGuard := stock.NewGuard(bookRepo)

	// 应用层
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	registerUseCase := appuser.NewRegisterUseCase(userService)

	manageBookUseCase := appbook.NewManageBookUseCase(bookService, stockCache)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, stockCache)
	getStockUseCase := appbook.NewGetStockUseCase(bookService, stockCache)

	createSalesUseCase := appsales.NewCreateSalesUseCase(salesRepo, bookRepo, associateRepo, stockGuard, txManager, publisher, stockCache)
	updateSalesUseCase := appsales.NewUpdateSalesUseCase(salesRepo, bookRepo, associateRepo, stockGuard, txManager, stockCache)
	deleteSalesUseCase := appsales.NewDeleteSalesUseCase(salesRepo, stockGuard, txManager, publisher, stockCache)
	getSalesUseCase := appsales.NewGetSalesUseCase(salesRepo)
	listSalesUseCase := appsales.NewListSalesUseCase(salesRepo)
	addPaymentUseCase := appsales.NewAddPaymentUseCase(salesRepo, txManager)
	removePaymentUseCase := appsales.NewRemovePaymentUseCase(salesRepo, txManager)
	saveShippingUseCase := appsales.NewSaveShippingUseCase(salesRepo, expeditionRepo, txManager)
	removeShippingUseCase := appsales.NewRemoveShippingUseCase(salesRepo, txManager)
	exportInvoiceUseCase := appsales.NewExportInvoiceUseCase(salesRepo, associateRepo, bookRepo, expeditionRepo)

	createPurchaseUseCase := apppurchase.NewCreatePurchaseUseCase(purchaseRepo, bookRepo, publisherRepo)
	updatePurchaseUseCase := apppurchase.NewUpdatePurchaseUseCase(purchaseRepo, bookRepo, txManager)
	deletePurchaseUseCase := apppurchase.NewDeletePurchaseUseCase(purchaseRepo, txManager)
	completePurchaseUseCase := apppurchase.NewCompletePurchaseUseCase(purchaseRepo, stockGuard, txManager, publisher, stockCache)
	cancelPurchaseUseCase := apppurchase.NewCancelPurchaseUseCase(purchaseRepo, txManager)
	getPurchaseUseCase := apppurchase.NewGetPurchaseUseCase(purchaseRepo)
	listPurchaseUseCase := apppurchase.NewListPurchaseUseCase(purchaseRepo)

	// 接口层
	userHandler := handler.NewUserHandler(loginUseCase, logoutUseCase, registerUseCase)
	bookHandler := handler.NewBookHandler(manageBookUseCase, getBookUseCase, getStockUseCase)
	salesHandler := handler.NewSalesHandler(
		createSalesUseCase, updateSalesUseCase, deleteSalesUseCase,
		getSalesUseCase, listSalesUseCase,
		addPaymentUseCase, removePaymentUseCase,
		saveShippingUseCase, removeShippingUseCase,
		exportInvoiceUseCase,
	)
	purchaseHandler := handler.NewPurchaseHandler(
		createPurchaseUseCase, updatePurchaseUseCase, deletePurchaseUseCase,
		completePurchaseUseCase, cancelPurchaseUseCase,
		getPurchaseUseCase, listPurchaseUseCase,
	)
	masterHandler := handler.NewMasterHandler(masterService)
	associateHandler := handler.NewAssociateHandler(associateService)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}

	registerRoutes(r, cfg, userHandler, bookHandler, salesHandler, purchaseHandler, masterHandler, associateHandler, authMiddleware)

	// 7. 启动服务(优雅关停)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("服务启动: http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("收到退出信号,正在关停...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("关停超时: %v", err)
	}
	log.Println("服务已退出")
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	salesHandler *handler.SalesHandler,
	purchaseHandler *handler.PurchaseHandler,
	masterHandler *handler.MasterHandler,
	associateHandler *handler.AssociateHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "healthy"})
	})

	// Prometheus指标
	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 登录(公开接口)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		// 其余接口都要求登录
		authorized := v1.Group("")
		authorized.Use(authMiddleware.RequireAuth())
		{
			authorized.POST("/auth/logout", userHandler.Logout)
			authorized.POST("/auth/register", userHandler.Register)

			// 图书
			books := authorized.Group("/books")
			{
				books.POST("", bookHandler.CreateBook)
				books.GET("", bookHandler.ListBooks)
				books.GET("/:id", bookHandler.GetBook)
				books.PUT("/:id", bookHandler.UpdateBook)
				books.DELETE("/:id", bookHandler.DeleteBook)
				books.GET("/:id/stock", bookHandler.GetStock)
			}

			// 销售
			sales := authorized.Group("/sales")
			{
				sales.POST("", salesHandler.CreateSales)
				sales.GET("", salesHandler.ListSales)
				sales.GET("/:id", salesHandler.GetSales)
				sales.PUT("/:id", salesHandler.UpdateSales)
				sales.DELETE("/:id", salesHandler.DeleteSales)
				sales.POST("/:id/payments", salesHandler.AddPayment)
				sales.DELETE("/:id/payments/:payment_id", salesHandler.RemovePayment)
				sales.POST("/:id/shippings", salesHandler.SaveShipping)
				sales.DELETE("/:id/shippings/:shipping_id", salesHandler.RemoveShipping)
				sales.GET("/:id/invoice", salesHandler.ExportInvoice)
			}

			// 采购
			purchases := authorized.Group("/purchases")
			{
				purchases.POST("", purchaseHandler.CreatePurchase)
				purchases.GET("", purchaseHandler.ListPurchases)
				purchases.GET("/:id", purchaseHandler.GetPurchase)
				purchases.PUT("/:id", purchaseHandler.UpdatePurchase)
				purchases.DELETE("/:id", purchaseHandler.DeletePurchase)
				purchases.POST("/:id/complete", purchaseHandler.CompletePurchase)
				purchases.POST("/:id/cancel", purchaseHandler.CancelPurchase)
			}

			// 业务员
			associates := authorized.Group("/associates")
			{
				associates.POST("", associateHandler.CreateAssociate)
				associates.GET("", associateHandler.ListAssociates)
				associates.GET("/:id", associateHandler.GetAssociate)
				associates.PUT("/:id", associateHandler.UpdateAssociate)
				associates.DELETE("/:id", associateHandler.DeleteAssociate)
			}

			// 基础资料
			registerMasterRoutes(authorized, masterHandler)
		}
	}
}

// registerMasterRoutes 注册五类基础资料的CRUD路由
func registerMasterRoutes(rg *gin.RouterGroup, h *handler.MasterHandler) {
	bookTypes := rg.Group("/book-types")
	{
		bookTypes.POST("", h.CreateBookType)
		bookTypes.GET("", h.ListBookTypes)
		bookTypes.PUT("/:id", h.UpdateBookType)
		bookTypes.DELETE("/:id", h.DeleteBookType)
	}

	fields := rg.Group("/fields-of-study")
	{
		fields.POST("", h.CreateFieldOfStudy)
		fields.GET("", h.ListFieldsOfStudy)
		fields.PUT("/:id", h.UpdateFieldOfStudy)
		fields.DELETE("/:id", h.DeleteFieldOfStudy)
	}

	cities := rg.Group("/cities")
	{
		cities.POST("", h.CreateCity)
		cities.GET("", h.ListCities)
		cities.PUT("/:id", h.UpdateCity)
		cities.DELETE("/:id", h.DeleteCity)
	}

	publishers := rg.Group("/publishers")
	{
		publishers.POST("", h.CreatePublisher)
		publishers.GET("", h.ListPublishers)
		publishers.PUT("/:id", h.UpdatePublisher)
		publishers.DELETE("/:id", h.DeletePublisher)
	}

	expeditions := rg.Group("/expeditions")
	{
		expeditions.POST("", h.CreateExpedition)
		expeditions.GET("", h.ListExpeditions)
		expeditions.PUT("/:id", h.UpdateExpedition)
		expeditions.DELETE("/:id", h.DeleteExpedition)
	}
}
