package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thundernada/farm-management/internal/allocation"
	"github.com/thundernada/farm-management/internal/analytics"
	analytichttp "github.com/thundernada/farm-management/internal/analytics/http"
	"github.com/thundernada/farm-management/internal/app"
	"github.com/thundernada/farm-management/internal/assets"
	"github.com/thundernada/farm-management/internal/inventory"
	"github.com/thundernada/farm-management/internal/ledger"
	"github.com/thundernada/farm-management/internal/masterdata"
	"github.com/thundernada/farm-management/internal/platform/cache"
	"github.com/thundernada/farm-management/internal/platform/db"
	"github.com/thundernada/farm-management/internal/reports"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	// The dashboard cache degrades to direct queries without Redis, so a
	// missing cache is a warning rather than a startup failure.
	var redisClient *redis.Client
	if client, err := cache.New(ctx, cfg.RedisAddr); err != nil {
		logger.Warn("redis unavailable, dashboard cache disabled", slog.Any("error", err))
	} else {
		redisClient = client
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	masterdataRepo := masterdata.NewRepository(pool)
	masterdataService := masterdata.NewService(masterdataRepo, logger)
	if err := masterdataService.EnsureSeeded(ctx); err != nil {
		logger.Error("seed cost centers", slog.Any("error", err))
		os.Exit(1)
	}
	masterdataHandler := masterdata.NewHandler(logger, masterdataService)

	analyticsCache := analytics.NewCache(redisClient, cfg.DashboardCacheTTL)

	ledgerRepo := ledger.NewRepository(pool)
	ledgerService := ledger.NewService(ledgerRepo, masterdataService, analyticsCache, logger, ledger.ServiceConfig{
		ReceiptMaxBytes: cfg.ReceiptMaxBytes,
	})
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	inventoryRepo := inventory.NewRepository(pool)
	inventoryService := inventory.NewService(inventoryRepo)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	allocationRepo := allocation.NewRepository(pool)
	allocationService := allocation.NewService(allocationRepo, masterdataService, analyticsCache, logger)
	allocationHandler := allocation.NewHandler(logger, allocationService)

	assetsRepo := assets.NewRepository(pool)
	assetsService := assets.NewService(assetsRepo)
	assetsHandler := assets.NewHandler(logger, assetsService)

	analyticsRepo := analytics.NewRepository(pool)
	analyticsService := analytics.NewService(analyticsRepo, assetsService, analyticsCache)
	dashboardHandler := analytichttp.NewHandler(logger, analyticsService)

	reportsRepo := reports.NewRepository(pool)
	reportsHandler := reports.NewHandler(logger, reportsRepo)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		MasterDataHandler: masterdataHandler,
		LedgerHandler:     ledgerHandler,
		InventoryHandler:  inventoryHandler,
		AllocationHandler: allocationHandler,
		AssetsHandler:     assetsHandler,
		DashboardHandler:  dashboardHandler,
		ReportsHandler:    reportsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
