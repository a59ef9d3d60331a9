package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workspot/config"
	"workspot/cron"
	"workspot/database"
	bookingRepo "workspot/database/repository/booking"
	reportRepo "workspot/database/repository/report"
	"workspot/handlers"
	"workspot/middleware"
	"workspot/routes"
	"workspot/services/booking"
	"workspot/services/moderation"
	"workspot/services/tasks"
	"workspot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.AppConfig.JWTSecret == "" {
		logger.Fatal("main: JWT_SECRET is required")
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	shutdownTracing, err := utils.SetupTracing(rootCtx, "workspot", config.AppConfig.OTelEndpoint)
	if err != nil {
		logger.Fatal("main: failed to set up tracing", zap.Error(err))
	}

	database.InitDB()
	lockClient := utils.GetLockClient()

	queueOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	queueClient := asynq.NewClient(queueOpt)
	queueHealthClient := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	reports := reportRepo.NewMongoReportRepo()

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:   bookings,
		Locker: utils.NewRedisSpaceLocker(lockClient, config.AppConfig.BookingLockTTL),
		Logger: logger.Named("booking"),
	}
	moderationService := &moderation.DefaultModerationService{
		Repo:      reports,
		FollowUps: &tasks.AsynqFollowUpScheduler{Client: queueClient},
		Logger:    logger.Named("moderation"),
	}

	if config.AppConfig.MigrateLegacyReports {
		if _, err := moderationService.MigrateLegacy(rootCtx); err != nil {
			logger.Error("main: startup legacy migration failed", zap.Error(err))
		}
	}

	worker := cron.InitModerationWorker(moderationService, logger.Named("worker"), queueOpt)
	utils.StartHealthMonitor(rootCtx, []*redis.Client{lockClient, queueHealthClient}, database.MongoClient)

	bookingHandler := handlers.NewBookingHandler(bookingService)
	reportHandler := handlers.NewReportHandler(moderationService)
	adminHandler := handlers.NewAdminHandler(moderationService)

	handlerBundle := &handlers.HandlerBundle{
		JWTSecret: config.AppConfig.JWTSecret,

		// Booking endpoints.
		CreateBookingHandler:  bookingHandler.CreateBooking,
		GetBookingHandler:     bookingHandler.GetBooking,
		ConfirmBookingHandler: bookingHandler.ConfirmBooking,
		CancelBookingHandler:  bookingHandler.CancelBooking,
		ListBookingsHandler:   bookingHandler.ListBookings,
		FindOverlapsHandler:   bookingHandler.FindOverlaps,

		// Report endpoints.
		FileReportHandler: reportHandler.FileReport,
		GetReportHandler:  reportHandler.GetReport,

		// Admin endpoints.
		ListReportsHandler:         adminHandler.ListReports,
		GetReportAdminHandler:      adminHandler.GetReport,
		UpdateReportHandler:        adminHandler.UpdateReport,
		StartReviewHandler:         adminHandler.StartReview,
		ResolveReportHandler:       adminHandler.ResolveReport,
		MigrateLegacyReportHandler: adminHandler.MigrateLegacyReports,

		HealthHandler: handlers.HealthCheck,
	}

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxies); err != nil {
		logger.Fatal("main: invalid trusted proxies", zap.Error(err))
	}
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	worker.Shutdown()
	if err := queueClient.Close(); err != nil {
		logger.Warn("main: closing queue client", zap.Error(err))
	}
	_ = queueHealthClient.Close()
	_ = lockClient.Close()
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: disconnecting MongoDB", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("main: flushing traces", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
