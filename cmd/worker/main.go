package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/surgiflow/surgiflow/internal/app"
	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/delivery"
	jobmetrics "github.com/surgiflow/surgiflow/internal/jobs"
	"github.com/surgiflow/surgiflow/internal/platform/cache"
	"github.com/surgiflow/surgiflow/internal/platform/db"
	"github.com/surgiflow/surgiflow/internal/store"
	"github.com/surgiflow/surgiflow/jobs"
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

	var backend store.Backend
	switch cfg.StoreDriver {
	case app.StoreDriverPostgres:
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		backend, err = store.NewPostgres(ctx, pool)
		if err != nil {
			logger.Error("init postgres store", slog.Any("error", err))
			os.Exit(1)
		}
	default:
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("connect redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		backend = store.NewRedis(client)
	}

	ledger := catalog.NewService(backend, logger, catalog.ServiceConfig{VelocityBump: cfg.VelocityBump})
	deliverySvc := delivery.NewService(backend, logger)

	metrics := jobmetrics.NewMetrics(nil)
	lowStockJob := jobs.NewLowStockScanJob(ledger, logger, metrics)
	sweepJob := jobs.NewDeliverySweepJob(deliverySvc, logger, metrics)

	lowStockTask, err := jobs.NewLowStockScanTask(jobs.LowStockScanPayload{})
	if err != nil {
		logger.Error("build low stock task", slog.Any("error", err))
		os.Exit(1)
	}
	sweepTask, err := jobs.NewDeliverySweepTask(jobs.DeliverySweepPayload{})
	if err != nil {
		logger.Error("build delivery sweep task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLowStockScan, Handler: lowStockJob.Handle},
			{Type: jobs.TaskDeliverySweep, Handler: sweepJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.LowStockCron, Task: lowStockTask},
			{Spec: cfg.DeliverySweepCron, Task: sweepTask},
		},
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker", slog.String("redis", cfg.RedisAddr))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
