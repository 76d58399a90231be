package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/straye-as/calltracker-api/docs"
	"github.com/straye-as/calltracker-api/internal/auth"
	"github.com/straye-as/calltracker-api/internal/cache"
	"github.com/straye-as/calltracker-api/internal/config"
	"github.com/straye-as/calltracker-api/internal/database"
	"github.com/straye-as/calltracker-api/internal/http/handler"
	"github.com/straye-as/calltracker-api/internal/http/middleware"
	"github.com/straye-as/calltracker-api/internal/http/router"
	"github.com/straye-as/calltracker-api/internal/jobs"
	"github.com/straye-as/calltracker-api/internal/logger"
	"github.com/straye-as/calltracker-api/internal/metrics"
	"github.com/straye-as/calltracker-api/internal/repository"
	"github.com/straye-as/calltracker-api/internal/service"
	"go.uber.org/zap"
)

// @title Call Tracker API
// @version 1.0
// @description Clients, calls and follow-up scheduling for sales teams.

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token from /users/login.

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if !basicCfg.App.IsDeployed() {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault when enabled
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.Connect(ctx, &cfg.Database, log, 5)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database schema migrated")
	}

	// Redis is optional; without it client statistics are computed per request
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, &cfg.Cache)
		if err != nil {
			log.Warn("Redis unavailable, continuing without stats cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Redis connected", zap.String("addr", cfg.Cache.Addr))
		}
	}
	statsCache := cache.New(redisClient, cfg.Cache.StatsTTLDuration())

	var m *metrics.Metrics
	if cfg.Server.EnableMetrics {
		m = metrics.New()
	}

	location := cfg.App.Location()
	log.Info("Scheduling timezone", zap.String("location", location.String()))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	callRepo := repository.NewCallRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	tokens := auth.NewTokenManager(&cfg.Auth)
	userService := service.NewUserService(userRepo, tokens, log)
	clientService := service.NewClientService(clientRepo, statsCache, m, log)
	callService := service.NewCallService(callRepo, clientRepo, service.ScheduleOptions{
		Location:      location,
		UpcomingLimit: cfg.Scheduling.UpcomingLimit,
	}, m, log)
	notificationService := service.NewNotificationService(notificationRepo, callRepo, location, m, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(tokens, userRepo, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		m,
		authMiddleware,
		rateLimiter,
		router.Handlers{
			User:         handler.NewUserHandler(userService, log),
			Client:       handler.NewClientHandler(clientService, log),
			Call:         handler.NewCallHandler(callService, log),
			Notification: handler.NewNotificationHandler(notificationService, log),
		},
	)

	var scheduler *jobs.Scheduler
	if cfg.Jobs.ReminderEnabled {
		scheduler = jobs.NewScheduler(log)
		reminderJob := jobs.NewCallReminderJob(notificationService, log, cfg.Jobs.ReminderTimeoutDuration())
		if err := reminderJob.Register(scheduler, cfg.Jobs.ReminderCron); err != nil {
			return fmt.Errorf("failed to register reminder job: %w", err)
		}
		scheduler.Start()
		log.Info("Scheduler started with call reminder job",
			zap.String("cron_expr", cfg.Jobs.ReminderCron),
			zap.Duration("timeout", cfg.Jobs.ReminderTimeoutDuration()),
		)
	} else {
		log.Info("Call reminders disabled")
	}

	var h http.Handler = rt.Setup()
	if timeout := cfg.Server.RequestTimeoutDuration(); timeout > 0 {
		h = http.TimeoutHandler(h, timeout, "request timed out")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           h,
		ReadTimeout:       cfg.Server.ReadTimeoutDuration(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Warn("Error closing redis connection", zap.Error(err))
			}
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
