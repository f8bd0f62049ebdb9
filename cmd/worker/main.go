package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rutea-api/internal/config"
	"github.com/rutea-api/internal/pkg/logger"
	"github.com/rutea-api/internal/pkg/tracing"
	"github.com/rutea-api/internal/repository/postgres"
	redisRepo "github.com/rutea-api/internal/repository/redis"
	"github.com/rutea-api/internal/usecase"
	"github.com/rutea-api/internal/worker"
	"github.com/rutea-api/internal/worker/activity"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting activity worker",
		zap.String("stream", cfg.Events.Stream),
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int64("batch_size", cfg.Worker.BatchSize),
	)

	shutdownTracing, err := tracing.Setup(context.Background(), cfg.Tracing, "1.0.0", log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Error("Failed to flush traces", zap.Error(err))
		}
	}()

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := redisRepo.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Repositories and workers
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	activityUC := usecase.NewActivityUseCase(postgres.NewActivityRepository(db), log)

	activityWorker := activity.NewWorker(streamRepo, activityUC, activity.Config{
		Stream:        cfg.Events.Stream,
		ConsumerGroup: cfg.Worker.ConsumerGroup,
		ConsumerName:  cfg.Worker.ConsumerName,
		BatchSize:     cfg.Worker.BatchSize,
	}, log)

	manager := worker.NewManager(worker.DefaultShutdownTimeout, log)
	manager.Register(activityWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 6. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info("Received shutdown signal")

	// Stop first so the loops exit between batches, then cancel blocked reads.
	if err := manager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
