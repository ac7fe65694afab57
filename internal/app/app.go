package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appHTTP "loyaltypro/internal/controller/http"
	"loyaltypro/internal/repo/persistent"
	"loyaltypro/internal/usecase"
	"loyaltypro/internal/worker"
	"loyaltypro/pkg/cache"
	"loyaltypro/pkg/config"
	"loyaltypro/pkg/culqi"
	"loyaltypro/pkg/database"
	"loyaltypro/pkg/jwt"
	"loyaltypro/pkg/logger"
	"loyaltypro/pkg/middleware"
	"loyaltypro/pkg/models"
	"loyaltypro/pkg/paypal"
	"loyaltypro/pkg/queue"
	"loyaltypro/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "loyaltypro/docs" // Swagger docs
)

type App struct {
	cfg           *config.Config
	log           *logger.Logger
	db            *gorm.DB
	redisClient   *redis.Client
	storageClient *storage.Client
	jwtService    *jwt.Service
	queueClient   *queue.Client
	httpServer    *http.Server

	workerCancel context.CancelFunc
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Tenant{},
		&models.Customer{},
		&models.Reward{},
		&models.Redemption{},
		&models.Notification{},
		&models.PaymentIntent{},
	); err != nil {
		log.Error("Failed to migrate database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without realtime notifications)", err)
		redisClient = nil
	}

	storageClient, err := storage.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create storage client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:           cfg,
		log:           log,
		db:            db,
		redisClient:   redisClient,
		storageClient: storageClient,
		jwtService:    jwtService,
		queueClient:   queueClient,
	}, nil
}

func (a *App) Run() error {
	// Repositories
	userRepo := persistent.NewUserRepository(a.db)
	tenantRepo := persistent.NewTenantRepository(a.db)
	customerRepo := persistent.NewCustomerRepository(a.db)
	rewardRepo := persistent.NewRewardRepository(a.db)
	notificationRepo := persistent.NewNotificationRepository(a.db)
	paymentRepo := persistent.NewPaymentRepository(a.db)

	// External clients
	culqiClient := culqi.NewClient(a.cfg.CulqiBaseURL, a.cfg.CulqiPrivateKey)
	paypalClient := paypal.NewClient(a.cfg.PayPalBaseURL, a.cfg.PayPalClientID, a.cfg.PayPalClientSecret)

	// Use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, a.jwtService, a.storageClient, a.cfg.AvatarsBucket, a.log)
	tenantUseCase := usecase.NewTenantUseCase(tenantRepo, a.redisClient, a.storageClient, a.cfg.IconsBucket, a.cfg.DefaultTimezone, a.log)
	customerUseCase := usecase.NewCustomerUseCase(customerRepo, rewardRepo, tenantRepo, a.taskPublisher(), a.log)
	rewardUseCase := usecase.NewRewardUseCase(rewardRepo, a.log)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, userRepo, a.redisClient, a.log)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, tenantRepo, culqiClient, paypalClient, a.taskPublisher(), a.log)

	// HTTP handlers
	authHandler := appHTTP.NewAuthHandler(authUseCase, a.log)
	tenantHandler := appHTTP.NewTenantHandler(tenantUseCase, a.log)
	customerHandler := appHTTP.NewCustomerHandler(customerUseCase, a.log)
	rewardHandler := appHTTP.NewRewardHandler(rewardUseCase, a.log)
	notificationHandler := appHTTP.NewNotificationHandler(notificationUseCase, a.redisClient, a.log, a.jwtService)
	paymentHandler := appHTTP.NewPaymentHandler(paymentUseCase, a.log)

	// Router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(middleware.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)

		// Public check-in page lookup
		api.GET("/tenants/slug/:slug", tenantHandler.GetTenantBySlug)

		// WebSocket authenticates via query token, so it sits outside the
		// Authorization-header middleware.
		api.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		if a.redisClient != nil {
			protected.Use(middleware.RateLimitMiddleware(a.redisClient, 100, time.Minute))
		}
		{
			protected.GET("/me", authHandler.GetMe)
			protected.PUT("/me/profile", authHandler.UpdateProfile)
			protected.PUT("/me/password", authHandler.ChangePassword)
			protected.POST("/me/avatar", authHandler.UploadAvatar)

			protected.GET("/tenant", tenantHandler.GetTenant)
			protected.PUT("/tenant", tenantHandler.UpdateTenant)
			protected.POST("/tenant/icon", tenantHandler.UploadIcon)

			protected.GET("/customers", customerHandler.ListCustomers)
			protected.POST("/customers", customerHandler.CreateCustomer)
			protected.GET("/customers/:id", customerHandler.GetCustomer)
			protected.PUT("/customers/:id", customerHandler.UpdateCustomer)
			protected.DELETE("/customers/:id", customerHandler.DeleteCustomer)
			protected.POST("/customers/:id/checkin", customerHandler.Checkin)
			protected.POST("/customers/:id/redeem", customerHandler.Redeem)

			protected.GET("/rewards", rewardHandler.ListRewards)
			protected.POST("/rewards", rewardHandler.CreateReward)
			protected.PUT("/rewards/:id", rewardHandler.UpdateReward)
			protected.DELETE("/rewards/:id", rewardHandler.DeleteReward)
			protected.GET("/redemptions", rewardHandler.ListRedemptions)

			protected.GET("/notifications", notificationHandler.GetNotifications)
			protected.POST("/notifications", notificationHandler.SendNotification)
			protected.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
			protected.PUT("/notifications/:id/read", notificationHandler.MarkRead)

			protected.POST("/payments/culqi", paymentHandler.ChargeCulqi)
			protected.POST("/payments/paypal/orders", paymentHandler.CreatePayPalOrder)
			protected.POST("/payments/paypal/orders/:order_id/capture", paymentHandler.CapturePayPalOrder)
		}
	}

	// Background workers
	workerCtx, cancel := context.WithCancel(context.Background())
	a.workerCancel = cancel

	reconciler := worker.NewReconciler(paymentUseCase, time.Minute, a.log)
	go reconciler.Run(workerCtx)

	if a.queueClient != nil {
		go a.consumeNotificationTasks(notificationUseCase)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("LoyaltyPro API starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

// taskPublisher hands the queue client to use cases as an interface; a nil
// client must stay a nil interface so publish sites can skip it.
func (a *App) taskPublisher() usecase.TaskPublisher {
	if a.queueClient == nil {
		return nil
	}
	return a.queueClient
}

// consumeNotificationTasks blocks on the RabbitMQ consumer and dispatches
// tasks by type. Handler errors are logged and the message is dropped
// (nack without requeue) so a poison task cannot wedge the queue.
func (a *App) consumeNotificationTasks(notificationUseCase usecase.NotificationUseCase) {
	err := a.queueClient.ConsumeNotificationTasks(func(task map[string]interface{}) error {
		taskType, _ := task["type"].(string)
		switch taskType {
		case "checkin":
			return notificationUseCase.HandleCheckinTask(task)
		case "redemption":
			return notificationUseCase.HandleRedemptionTask(task)
		case "payment":
			return notificationUseCase.HandlePaymentTask(task)
		default:
			a.log.Warn("Unknown notification task type %q, dropping", taskType)
			return nil
		}
	})
	if err != nil {
		a.log.Error("Notification task consumer stopped: %v", err)
	}
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down LoyaltyPro API...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.workerCancel != nil {
		a.workerCancel()
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Error shutting down HTTP server: %v", err)
			return err
		}
	}

	a.log.Info("Shutdown complete")
	return nil
}
