package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/surgiflow/surgiflow/internal/app"
	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/command"
	"github.com/surgiflow/surgiflow/internal/delivery"
	"github.com/surgiflow/surgiflow/internal/platform/cache"
	"github.com/surgiflow/surgiflow/internal/platform/db"
	"github.com/surgiflow/surgiflow/internal/production"
	"github.com/surgiflow/surgiflow/internal/sales"
	"github.com/surgiflow/surgiflow/internal/store"
	"github.com/surgiflow/surgiflow/jobs"
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

	var backend store.Backend
	var jobsHandler *jobs.Handler
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

		inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := jobsClient.Close(); err != nil {
				logger.Warn("jobs client close", slog.Any("error", err))
			}
		}()
		jobsHandler = jobs.NewHandler(inspector, jobsClient, logger)
	}

	ledger := catalog.NewService(backend, logger, catalog.ServiceConfig{VelocityBump: cfg.VelocityBump})
	productionSvc := production.NewService(backend, ledger, logger)
	salesSvc := sales.NewService(backend, ledger, logger)
	deliverySvc := delivery.NewService(backend, logger)
	dispatcher := command.NewDispatcher(ledger, productionSvc, deliverySvc, logger)

	if cfg.SeedDemoData {
		for name, seed := range map[string]func(context.Context) error{
			"products":   ledger.SeedIfEmpty,
			"wip":        productionSvc.SeedIfEmpty,
			"deliveries": deliverySvc.SeedIfEmpty,
		} {
			if err := seed(ctx); err != nil {
				logger.Error("seed collection", slog.String("collection", name), slog.Any("error", err))
				os.Exit(1)
			}
		}
	}

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		CatalogHandler:    catalog.NewHandler(logger, ledger),
		ProductionHandler: production.NewHandler(logger, productionSvc),
		SalesHandler:      sales.NewHandler(logger, salesSvc),
		DeliveryHandler:   delivery.NewHandler(logger, deliverySvc),
		CommandHandler:    command.NewHandler(logger, dispatcher),
		JobsHandler:       jobsHandler,
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
