package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/stockroomhq/stockroom-backend/api/flash"
	"github.com/stockroomhq/stockroom-backend/api/routes"
	"github.com/stockroomhq/stockroom-backend/internal/inventory"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/env"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/migrate"
	"github.com/stockroomhq/stockroom-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "stockroom"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "stockroom",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to create schema", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	var redisClient *redis.Client
	flashStore := flash.NewMemoryStore()
	if cfg.Redis.URL != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			_ = dbClient.Close()
			os.Exit(1)
		}
		flashStore, err = flash.NewRedisStore(redisClient, 0)
		if err != nil {
			logg.Error(context.Background(), "failed to build flash store", err)
			_ = closeAll(dbClient, redisClient)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "no redis URL configured, flash messages are in-process only")
	}

	inventoryService, err := inventory.NewService(
		inventory.NewRepository(dbClient.DB()),
		dbClient,
		cfg.Inventory.LowStockThreshold,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		_ = closeAll(dbClient, redisClient)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":       cfg.App.Env,
		"addr":      addr,
		"driver":    dbClient.Driver(),
		"threshold": cfg.Inventory.LowStockThreshold,
	})
	logg.Info(ctx, "starting stockroom server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:           cfg,
			Logger:           logg,
			DB:               dbClient,
			Redis:            redisClient,
			Flash:            flashStore,
			InventoryService: inventoryService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "server stopped unexpectedly", err)
			_ = closeAll(dbClient, redisClient)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	if err := closeAll(dbClient, redisClient); err != nil {
		logg.Error(ctx, "error closing resources", err)
		os.Exit(1)
	}
	logg.Info(ctx, "stockroom server stopped")
}

func closeAll(dbClient *db.Client, redisClient *redis.Client) error {
	var errs error
	if dbClient != nil {
		errs = multierr.Append(errs, dbClient.Close())
	}
	if redisClient != nil {
		errs = multierr.Append(errs, redisClient.Close())
	}
	return errs
}
