package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/thundernada/farm-management/internal/allocation"
	"github.com/thundernada/farm-management/internal/analytics"
	"github.com/thundernada/farm-management/internal/app"
	"github.com/thundernada/farm-management/internal/assets"
	"github.com/thundernada/farm-management/internal/masterdata"
	"github.com/thundernada/farm-management/internal/platform/db"
	"github.com/thundernada/farm-management/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	masterdataService := masterdata.NewService(masterdata.NewRepository(pool), logger)
	assetsService := assets.NewService(assets.NewRepository(pool))

	analyticsCache := analytics.NewCache(redisClient, cfg.DashboardCacheTTL)
	analyticsService := analytics.NewService(analytics.NewRepository(pool), assetsService, analyticsCache)

	allocationService := allocation.NewService(allocation.NewRepository(pool), masterdataService, analyticsCache, logger)

	warmupJob := jobs.NewDashboardWarmupJob(analyticsService, logger)
	integrityJob := jobs.NewAllocationIntegrityJob(allocationService, logger)

	warmupTask, err := jobs.NewDashboardWarmupTask(jobs.DashboardWarmupPayload{Reason: "cron"})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}
	integrityTask, err := jobs.NewAllocationIntegrityTask(jobs.AllocationIntegrityPayload{Reason: "cron"})
	if err != nil {
		logger.Error("build integrity task", slog.Any("error", err))
		os.Exit(1)
	}

	client, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	if _, err := client.EnqueueDashboardWarmup(ctx, jobs.DashboardWarmupPayload{Reason: "startup"}); err != nil {
		logger.Warn("enqueue startup warmup", slog.Any("error", err))
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskDashboardWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskAllocationIntegrity, Handler: integrityJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "15 1 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "45 1 * * *", Task: integrityTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
