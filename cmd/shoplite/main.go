package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/shoplite/shoplite/internal/app"
	"github.com/shoplite/shoplite/internal/auth"
	"github.com/shoplite/shoplite/internal/catalog"
	"github.com/shoplite/shoplite/internal/inventory"
	"github.com/shoplite/shoplite/internal/invoices"
	"github.com/shoplite/shoplite/internal/orders"
	"github.com/shoplite/shoplite/internal/platform/cache"
	"github.com/shoplite/shoplite/internal/platform/db"
	"github.com/shoplite/shoplite/internal/shared"
	"github.com/shoplite/shoplite/internal/suppliers"
	"github.com/shoplite/shoplite/jobs"
)

func main() {
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
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokenStore := auth.NewTokenStore(redisClient, 0)
	authMiddleware := auth.Middleware{Store: tokenStore, Logger: logger}

	auditLogger := shared.NewAuditLogger(pool)
	idempotency := shared.NewIdempotencyStore(pool)

	taskClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init task client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Warn("task client close", slog.Any("error", err))
		}
	}()

	catalogService := catalog.NewService(catalog.NewRepository(pool))
	supplierService := suppliers.NewService(suppliers.NewRepository(pool), auditLogger)
	inventoryService := inventory.NewService(inventory.NewRepository(pool))
	invoiceService := invoices.NewService(invoices.NewRepository(pool), auditLogger)
	orderService := orders.NewService(
		orders.NewRepository(pool),
		catalogService,
		supplierService,
		auditLogger,
		idempotency,
		taskClient,
		cfg.InvoiceGraceDays,
	)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthMiddleware:   authMiddleware,
		OrdersHandler:    orders.NewHandler(logger, orderService, authMiddleware),
		InventoryHandler: inventory.NewHandler(logger, inventoryService),
		InvoicesHandler:  invoices.NewHandler(logger, invoiceService, authMiddleware),
		SuppliersHandler: suppliers.NewHandler(logger, supplierService, authMiddleware),
		CatalogHandler:   catalog.NewHandler(logger, catalogService, authMiddleware),
		JobHandler:       jobs.NewHandler(inspector, logger),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	// retired idempotency keys only grow the table, sweep them daily
	g.Go(func() error {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := idempotency.Cleanup(gctx, 30*24*time.Hour); err != nil {
					logger.Warn("idempotency cleanup", slog.Any("error", err))
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
