package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/woodora/woodora-backend/config"
	"github.com/woodora/woodora-backend/internal/auth"
	blogHandler "github.com/woodora/woodora-backend/internal/blog/handler"
	blogRepository "github.com/woodora/woodora-backend/internal/blog/repository"
	blogUseCase "github.com/woodora/woodora-backend/internal/blog/usecase"
	categoryHandler "github.com/woodora/woodora-backend/internal/category/handler"
	categoryRepository "github.com/woodora/woodora-backend/internal/category/repository"
	categoryUseCase "github.com/woodora/woodora-backend/internal/category/usecase"
	couponHandler "github.com/woodora/woodora-backend/internal/coupon/handler"
	couponRepository "github.com/woodora/woodora-backend/internal/coupon/repository"
	couponUseCase "github.com/woodora/woodora-backend/internal/coupon/usecase"
	inventoryHandler "github.com/woodora/woodora-backend/internal/inventory/handler"
	inventoryListener "github.com/woodora/woodora-backend/internal/inventory/listener"
	inventoryRepository "github.com/woodora/woodora-backend/internal/inventory/repository"
	inventoryUseCase "github.com/woodora/woodora-backend/internal/inventory/usecase"
	marketingHandler "github.com/woodora/woodora-backend/internal/marketing/handler"
	marketingRepository "github.com/woodora/woodora-backend/internal/marketing/repository"
	marketingUseCase "github.com/woodora/woodora-backend/internal/marketing/usecase"
	"github.com/woodora/woodora-backend/internal/notify"
	"github.com/woodora/woodora-backend/internal/notify/whatsapp"
	orderHandler "github.com/woodora/woodora-backend/internal/order/handler"
	orderRepository "github.com/woodora/woodora-backend/internal/order/repository"
	orderUseCase "github.com/woodora/woodora-backend/internal/order/usecase"
	"github.com/woodora/woodora-backend/internal/payment"
	productHandler "github.com/woodora/woodora-backend/internal/product/handler"
	productRepository "github.com/woodora/woodora-backend/internal/product/repository"
	productUseCase "github.com/woodora/woodora-backend/internal/product/usecase"
	settingsHandler "github.com/woodora/woodora-backend/internal/settings/handler"
	settingsRepository "github.com/woodora/woodora-backend/internal/settings/repository"
	settingsUseCase "github.com/woodora/woodora-backend/internal/settings/usecase"
	"github.com/woodora/woodora-backend/pkg/broker"
	"github.com/woodora/woodora-backend/pkg/cache"
	"github.com/woodora/woodora-backend/pkg/logger"
	"github.com/woodora/woodora-backend/pkg/postgres"
	"github.com/woodora/woodora-backend/pkg/search"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	log := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv != "production",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer log.Sync()
	log.Info("starting woodora backend", zap.String("env", cfg.Server.AppEnv))

	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	// search is an enhancement; listing falls back to the database when
	// the cluster is unreachable
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		log.Warn("elasticsearch unavailable, product search degraded", zap.Error(err))
		esClient = nil
	}

	producer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()

	consumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer consumer.Close()

	cashfree := payment.NewClient(&payment.Config{
		BaseURL:   cfg.Cashfree.BaseURL,
		AppID:     cfg.Cashfree.AppID,
		SecretKey: cfg.Cashfree.SecretKey,
		Mode:      cfg.Cashfree.Mode,
		ReturnURL: cfg.Cashfree.ReturnURL,
	})

	waClient := whatsapp.NewClient(&whatsapp.Config{
		BaseURL:       cfg.WhatsApp.BaseURL,
		APIVersion:    cfg.WhatsApp.APIVersion,
		PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
		AccessToken:   cfg.WhatsApp.AccessToken,
	})
	notifier := notify.NewOrderNotifier(waClient, cfg.WhatsApp.ConfirmationTemplate, cfg.WhatsApp.TemplateLanguage)

	// repositories
	productRepo := productRepository.NewPGRepository(db)
	categoryRepo := categoryRepository.NewPGRepository(db)
	blogRepo := blogRepository.NewPGRepository(db)
	settingsRepo := settingsRepository.NewPGRepository(db)
	couponRepo := couponRepository.NewPGRepository(db)
	orderRepo := orderRepository.NewPGRepository(db)
	inventoryRepo := inventoryRepository.NewInventoryRepository(db)
	marketingRepo := marketingRepository.NewMarketingRepository(db)

	// use cases
	settingsUC := settingsUseCase.NewSettingsUseCase(settingsRepo, redisClient, log)
	productUC := productUseCase.NewProductUseCase(productRepo, redisClient, esClient, settingsUC, log)
	categoryUC := categoryUseCase.NewCategoryUseCase(categoryRepo, log)
	blogUC := blogUseCase.NewBlogUseCase(blogRepo, log)
	couponUC := couponUseCase.NewCouponUseCase(couponRepo, log)
	inventoryUC := inventoryUseCase.NewInventoryUseCase(inventoryRepo, redisClient, log)
	marketingUC := marketingUseCase.NewMarketingUseCase(marketingRepo, waClient, log)
	orderUC := orderUseCase.NewOrderUseCase(orderUseCase.Deps{
		Repo:     orderRepo,
		Catalog:  productRepo,
		Coupons:  couponUC,
		Settings: settingsUC,
		Gateway:  cashfree,
		Notifier: notifier,
		Events:   producer,
		Idem:     redisClient,
		Mode:     cashfree.Mode(),
		Logger:   log,
	})

	// the inventory listener runs alongside the HTTP server and stops
	// with the same signal context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener := inventoryListener.NewListener(consumer, inventoryUC, log)
	go listener.Run(ctx)

	// handlers
	if cfg.Server.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	productH := productHandler.NewProductHandler(productUC, log)
	categoryH := categoryHandler.NewCategoryHandler(categoryUC, log)
	blogH := blogHandler.NewBlogHandler(blogUC, log)
	settingsH := settingsHandler.NewSettingsHandler(settingsUC, log)
	couponH := couponHandler.NewCouponHandler(couponUC, log)
	orderH := orderHandler.NewOrderHandler(orderUC, settingsUC, cashfree, log)
	inventoryH := inventoryHandler.NewInventoryHandler(inventoryUC, log)
	marketingH := marketingHandler.NewMarketingHandler(marketingUC, log)

	api := engine.Group("/api/v1")
	productH.RegisterRoutes(api)
	categoryH.RegisterRoutes(api)
	blogH.RegisterRoutes(api)
	settingsH.RegisterRoutes(api)
	couponH.RegisterRoutes(api)
	orderH.RegisterRoutes(api)
	marketingH.RegisterRoutes(api)

	admin := api.Group("/admin", auth.AdminKey(cfg.Server.AdminAPIKey))
	productH.RegisterAdminRoutes(admin)
	categoryH.RegisterAdminRoutes(admin)
	blogH.RegisterAdminRoutes(admin)
	settingsH.RegisterAdminRoutes(admin)
	couponH.RegisterAdminRoutes(admin)
	orderH.RegisterAdminRoutes(admin)
	inventoryH.RegisterAdminRoutes(admin)
	marketingH.RegisterAdminRoutes(admin)

	orderH.RegisterWebhookRoutes(engine)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.HTTPPort,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("http server listening", zap.String("port", cfg.Server.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
