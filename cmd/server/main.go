package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/kperez42/Celestia-sub000/internal/config"
	"github.com/kperez42/Celestia-sub000/internal/database"
	"github.com/kperez42/Celestia-sub000/internal/handlers"
	"github.com/kperez42/Celestia-sub000/internal/logging"
	"github.com/kperez42/Celestia-sub000/internal/middleware"
	"github.com/kperez42/Celestia-sub000/internal/notify"
	"github.com/kperez42/Celestia-sub000/internal/routes"
	"github.com/kperez42/Celestia-sub000/internal/services"
	"github.com/kperez42/Celestia-sub000/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Notification delivery: Redis queue if configured, structured log otherwise
	var notifier notify.Dispatcher = notify.LogDispatcher{}
	var redisNotifier *notify.RedisDispatcher
	if cfg.RedisAddr != "" {
		rd, err := notify.NewRedisDispatcher(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Error("redis connection failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		notifier = rd
		redisNotifier = rd
		slog.Info("notifications queued to redis", "addr", cfg.RedisAddr)
	} else {
		slog.Warn("REDIS_ADDR not set, notifications will only be logged")
	}

	// Verification photo storage: S3 if configured, local disk otherwise
	var blobs storage.BlobStorage
	if cfg.S3AccessKeyID != "" && cfg.S3SecretAccessKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3, err := storage.NewS3Storage(ctx, storage.S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			EndpointURL:     cfg.S3EndpointURL,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		cancel()
		if err != nil {
			slog.Error("s3 storage init failed", "bucket", cfg.S3Bucket, "error", err)
			os.Exit(1)
		}
		blobs = s3
		slog.Info("verification photos stored in s3", "bucket", cfg.S3Bucket)
	} else {
		local, err := storage.NewLocalStorage("./uploads", "http://localhost:"+cfg.Port+"/uploads")
		if err != nil {
			slog.Error("local storage init failed", "error", err)
			os.Exit(1)
		}
		blobs = local
		slog.Warn("S3 credentials not set, verification photos stored on local disk")
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	moderationService := services.NewModerationService(database.DB, notifier)
	queueService := services.NewQueueService(database.DB)
	screeningService := services.NewScreeningService(queueService)
	profileService := services.NewProfileService(database.DB, screeningService)
	reportService := services.NewReportService(database.DB, moderationService)
	appealService := services.NewAppealService(database.DB, moderationService)
	verificationService := services.NewVerificationService(database.DB, blobs, notifier)

	// Expired suspensions are lifted by an hourly sweep
	sweepDone := make(chan struct{})
	moderationService.StartSuspensionSweep(sweepDone)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()
	profileHandler := handlers.NewProfileHandler(profileService, moderationService)
	moderationHandler := handlers.NewModerationHandler(moderationService, reportService, queueService)
	appealHandler := handlers.NewAppealHandler(appealService)
	verificationHandler := handlers.NewVerificationHandler(verificationService, cfg.VerificationWebhookSecret)
	legalHandler := handlers.NewLegalHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB,
		authHandler, healthHandler, profileHandler, moderationHandler,
		appealHandler, verificationHandler, legalHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(sweepDone)
	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if redisNotifier != nil {
		if err := redisNotifier.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
