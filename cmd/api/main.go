// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kaziconnect/backend/internal/activity"
	"github.com/kaziconnect/backend/internal/admin"
	"github.com/kaziconnect/backend/internal/application"
	"github.com/kaziconnect/backend/internal/auth"
	"github.com/kaziconnect/backend/internal/config"
	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/dispute"
	"github.com/kaziconnect/backend/internal/health"
	"github.com/kaziconnect/backend/internal/job"
	"github.com/kaziconnect/backend/internal/middleware"
	"github.com/kaziconnect/backend/internal/notification"
	"github.com/kaziconnect/backend/internal/profile"
	"github.com/kaziconnect/backend/internal/savedjob"
	"github.com/kaziconnect/backend/internal/server"
	"github.com/kaziconnect/backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	if cfg.Database.Migrate {
		if err := core.RunMigrations(cfg.Database.URL); err != nil {
			return err
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	notificationRepo := notification.NewRepository(db.DB)
	notificationSvc := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationSvc)

	activityRepo := activity.NewRepository(db.DB)
	activitySvc := activity.NewService(activityRepo)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	seekerRepo := profile.NewSeekerRepository(db.DB)
	employerRepo := profile.NewEmployerRepository(db.DB)
	profileSvc := profile.NewService(
		seekerRepo,
		employerRepo,
		userRepo,
		notificationSvc,
	)
	profileHandler := profile.NewHandler(profileSvc)
	registration := profile.NewRegistration(db.DB)

	authSvc := auth.NewService(userSvc, registration, activitySvc, jwtManager)
	authHandler := auth.NewHandler(authSvc)

	jobRepo := job.NewRepository(db.DB)
	jobSvc := job.NewService(jobRepo, employerRepo, notificationSvc)
	jobHandler := job.NewHandler(jobSvc)

	applicationRepo := application.NewRepository(db.DB)
	applicationSvc := application.NewService(
		db.DB,
		applicationRepo,
		jobRepo,
		seekerRepo,
		employerRepo,
		notificationSvc,
	)
	applicationHandler := application.NewHandler(applicationSvc)

	savedJobRepo := savedjob.NewRepository(db.DB)
	savedJobSvc := savedjob.NewService(savedJobRepo, seekerRepo)
	savedJobHandler := savedjob.NewHandler(savedJobSvc)

	disputeRepo := dispute.NewRepository(db.DB)
	disputeSvc := dispute.NewService(disputeRepo, notificationSvc)
	disputeHandler := dispute.NewHandler(disputeSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Users:      userSvc,
		Profiles:   profileSvc,
		Jobs:       jobSvc,
		Disputes:   disputeSvc,
		Activity:   activitySvc,
		Stats:      admin.NewStatsRepository(db.DB),
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestLogger)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders)
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	optionalAuth := middleware.OptionalAuth(jwtManager)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator)
		profileHandler.RegisterRoutes(r, authenticator)
		jobHandler.RegisterRoutes(r, authenticator, optionalAuth)
		applicationHandler.RegisterRoutes(r, authenticator)
		savedJobHandler.RegisterRoutes(r, authenticator)
		notificationHandler.RegisterRoutes(r, authenticator)
		disputeHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
