package main

// @title Rutea API
// @version 1.0.0
// @description REST API for tourism routes: users, categories, points of interest, reviews and routes.
// @description Every write publishes a change event; GET /api/actividad lists them once stored by the worker.

// @contact.name API Support
// @contact.email support@rutea.example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	_ "github.com/rutea-api/docs/swagger"
	"github.com/rutea-api/internal/config"
	httpDelivery "github.com/rutea-api/internal/delivery/http"
	"github.com/rutea-api/internal/delivery/http/handler"
	"github.com/rutea-api/internal/pkg/logger"
	"github.com/rutea-api/internal/pkg/tracing"
	"github.com/rutea-api/internal/repository/postgres"
	redisRepo "github.com/rutea-api/internal/repository/redis"
	"github.com/rutea-api/internal/usecase"
)

const version = "1.0.0"

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Rutea API",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("events_enabled", cfg.Events.Enabled),
	)

	shutdownTracing, err := tracing.Setup(context.Background(), cfg.Tracing, version, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	// 3. Schema
	if cfg.Database.AutoMigrate {
		if err := migrateUp(cfg, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// 4. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	checks := map[string]handler.HealthChecker{"postgres": db}

	// 5. Change events go to Redis only when enabled
	var (
		events      usecase.EventPublisher = usecase.NopEventPublisher{}
		redisClient *redisRepo.Redis
	)
	if cfg.Events.Enabled {
		redisClient, err = redisRepo.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
		events = usecase.NewStreamEventPublisher(streamRepo, cfg.Events.Stream, log)
		checks["redis"] = redisClient
	}

	// 6. Repositories
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	pointRepo := postgres.NewPointRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	routeRepo := postgres.NewRouteRepository(db)
	activityRepo := postgres.NewActivityRepository(db)

	// 7. Use cases
	userUC := usecase.NewUserUseCase(userRepo, events, cfg.Security.BcryptCost, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, events, log)
	pointUC := usecase.NewPointUseCase(pointRepo, categoryRepo, events, log)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, pointRepo, userRepo, events, log)
	routeUC := usecase.NewRouteUseCase(routeRepo, userRepo, pointRepo, events, log)
	activityUC := usecase.NewActivityUseCase(activityRepo, log)

	// 8. Handlers and server
	handlers := httpDelivery.Handlers{
		User:     handler.NewUserHandler(userUC, log),
		Category: handler.NewCategoryHandler(categoryUC, log),
		Point:    handler.NewPointHandler(pointUC, log),
		Review:   handler.NewReviewHandler(reviewUC, log),
		Route:    handler.NewRouteHandler(routeUC, log),
		Activity: handler.NewActivityHandler(activityUC, log),
		Health:   handler.NewHealthHandler(checks, log),
	}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewDBStatsCollector(db.DB.DB, "rutea"),
		)
	}

	server := httpDelivery.NewServer(cfg, log, handlers, registry)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Error("Failed to flush traces", zap.Error(err))
	}

	log.Info("Server stopped")
}

func migrateUp(cfg *config.Config, log *zap.Logger) error {
	migrator, err := postgres.NewMigrator(cfg.GetDatabaseURL(), log)
	if err != nil {
		return err
	}
	defer migrator.Close()
	return migrator.Up()
}
