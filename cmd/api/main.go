package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/jewelbill-api/internal/application/service"
	"github.com/sangkips/jewelbill-api/internal/config"
	"github.com/sangkips/jewelbill-api/internal/infrastructure/database"
	"github.com/sangkips/jewelbill-api/internal/infrastructure/lock"
	"github.com/sangkips/jewelbill-api/internal/infrastructure/repository"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/dto/request"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/handler"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/middleware"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/routes"
	"github.com/sangkips/jewelbill-api/pkg/utils"
)

const billLockTTL = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	logger := config.NewLogger(cfg.Log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewDB(&cfg.Database, cfg.App.Debug, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	if err := request.RegisterValidators(cfg.Billing.PhoneRegion); err != nil {
		logger.Fatalf("Failed to register validators: %v", err)
	}

	// Bill saves are serialised through redis when it is configured so
	// several instances share one number sequence.
	locker := lock.NewLocalLocker()
	if cfg.Redis.Address != "" {
		rdb, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			config.LogError(logger, "main", "main", "redis unavailable, using in-process bill lock", cfg.Redis.Address, err)
		} else {
			defer rdb.Close()
			locker = lock.NewRedisLocker(redislock.New(rdb), billLockTTL, logger)
			logger.WithField("address", cfg.Redis.Address).Info("using redis bill lock")
		}
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	billRepo := repository.NewBillRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	location := cfg.Billing.Location()
	authService := service.NewAuthService(userRepo, jwtManager, logger)
	materialService := service.NewMaterialService(materialRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo, materialService, logger)
	billService := service.NewBillService(billRepo, materialService, settingsService, locker, location, cfg.Billing.PhoneRegion, logger)
	reportService := service.NewReportService(billRepo, materialService, settingsService, location, logger)

	// Seed default data
	if err := materialService.EnsureDefaults(ctx); err != nil {
		logger.Fatalf("Failed to seed default materials: %v", err)
	}
	if err := authService.EnsureOwner(ctx, cfg.Admin); err != nil {
		logger.Fatalf("Failed to seed owner account: %v", err)
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Material:  handler.NewMaterialHandler(materialService),
		Bill:      handler.NewBillHandler(billService, location),
		Settings:  handler.NewSettingsHandler(settingsService),
		Dashboard: handler.NewDashboardHandler(reportService),
		Report:    handler.NewReportHandler(reportService),
	}

	rateLimiter := routes.NewRateLimiter(&cfg.RateLimit)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          logger,
		RateLimiter:     rateLimiter,
	})

	middleware.StartIdempotencyCleanup(ctx, idempotencyRepo, time.Hour, logger)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("env", cfg.App.Env).WithField("port", port).Infof("Starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.LogError(logger, "main", "main", "graceful shutdown failed", nil, err)
	}
}
