package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/economia-solidaria/backend/config"
	"github.com/economia-solidaria/backend/internal/app/controller"
	"github.com/economia-solidaria/backend/internal/app/media"
	"github.com/economia-solidaria/backend/internal/app/repository"
	"github.com/economia-solidaria/backend/internal/app/service"
	"github.com/economia-solidaria/backend/internal/db"
	"github.com/economia-solidaria/backend/internal/middleware"
	"github.com/economia-solidaria/backend/internal/router"
	"github.com/economia-solidaria/backend/internal/scheduler"
	"github.com/economia-solidaria/backend/internal/storage"
	"github.com/economia-solidaria/backend/pkg/logger"
	"github.com/economia-solidaria/backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Economia Solidária Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations and seed the base data (plans, admin account)
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (token blacklist)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	registrationRepo := repository.NewRegistrationRepository(db.GetDB())
	businessRepo := repository.NewBusinessRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	planRepo := repository.NewPlanRepository(db.GetDB())

	// Initialize services
	normalizer := media.NewNormalizer(cfg.Upload)
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		cfg.Google,
	)
	registrationService := service.NewRegistrationService(registrationRepo, planRepo, normalizer)
	moderationService := service.NewModerationService(db.GetDB(), registrationRepo)
	businessService := service.NewBusinessService(businessRepo)
	reviewService := service.NewReviewService(reviewRepo, businessRepo)
	planService := service.NewPlanService(planRepo)

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	registrationController := controller.NewRegistrationController(registrationService)
	adminController := controller.NewAdminController(moderationService)
	businessController := controller.NewBusinessController(businessService, reviewService)
	reviewController := controller.NewReviewController(reviewService)
	planController := controller.NewPlanController(planService)
	uploadController := controller.NewUploadController(s3Storage, cfg.Upload.MaxImageBytes)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the daily subscription expiry sweep
	subscriptionScheduler := scheduler.NewSubscriptionScheduler(planService)
	if err := subscriptionScheduler.Start(); err != nil {
		logger.Fatal("Failed to start subscription scheduler", err)
	}
	defer subscriptionScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		registrationController,
		adminController,
		businessController,
		reviewController,
		planController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
