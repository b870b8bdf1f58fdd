package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelops/config"
	"hotelops/cron"
	"hotelops/database"
	folioRepo "hotelops/database/repository/folio"
	recordsRepo "hotelops/database/repository/records"
	"hotelops/handlers"
	"hotelops/middleware"
	"hotelops/routes"
	"hotelops/services/cashier"
	"hotelops/services/folio"
	"hotelops/services/notification"
	"hotelops/services/storage"
	"hotelops/services/tasks"
	"hotelops/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	// Money is rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
	stripe.Key = config.AppConfig.StripeKey
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	cache := utils.GetCacheClient()
	utils.FirebaseInit()

	cld, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary: %v", err)
	}

	// repositories.
	repo := folioRepo.NewMongoFolioRepo(logger)
	records := recordsRepo.NewMongoRecordRepo(logger)

	// services.
	notificationService, err := notification.NewDefaultNotificationService(utils.FCMClient, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	storageService := storage.NewStorageService(cld, logger)

	queueClient := cron.NewQueueClient()
	statementQueue := tasks.NewAsynqStatementQueue(queueClient)

	folioService := folio.NewDefaultFolioService(repo, notificationService, statementQueue, config.AppConfig.FolioLegacyMatching, logger)
	folioService.Records = records
	cashierService := cashier.NewDefaultCashierService(folioService, cashier.NewStripeGateway(), config.AppConfig.Currency, logger)
	idempotency := cashier.NewRedisIdempotencyStore(cache)

	// background work.
	processor := cron.NewStatementProcessor(folioService, repo, storageService, notificationService, logger)
	worker := cron.InitStatementWorker(processor, logger)
	utils.StartHealthMonitor([]*redis.Client{cache}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware())

	folioHandler := handlers.NewFolioHandler(folioService, cashierService, idempotency, config.AppConfig.IdempotencyTTL)
	storageHandler := handlers.NewStorageHandler(storageService, folioService)
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(folioHandler, storageHandler))

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("starting server",
		zap.String("addr", srv.Addr),
		zap.Bool("legacyMatching", config.AppConfig.FolioLegacyMatching))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	if err := queueClient.Close(); err != nil {
		logger.Warn("main: queue client close failed", zap.Error(err))
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
