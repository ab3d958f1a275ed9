package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facadeworks/facade-workbench/config"
	"github.com/facadeworks/facade-workbench/internal/bootstrap"
	"github.com/facadeworks/facade-workbench/internal/logging"
	"github.com/facadeworks/facade-workbench/internal/storage/postgres"
	"github.com/facadeworks/facade-workbench/internal/workbench/catalog"
	"github.com/facadeworks/facade-workbench/internal/workbench/preview"
	"github.com/facadeworks/facade-workbench/internal/workbench/repository"
	"github.com/facadeworks/facade-workbench/internal/workbench/schema"
	"github.com/facadeworks/facade-workbench/internal/workbench/service"
)

const serviceName = "facade-workbench"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.App.LogLevel, cfg.App.LogFormat, os.Stdout)
	slog.SetDefault(logger)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	var (
		db      *pgxpool.Pool
		archive service.Archive
	)
	if cfg.Database.Enabled() {
		db, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{
			DSN:      postgres.DSN(&cfg.Database),
			MaxConns: int32(cfg.Database.MaxConns),
			MinConns: int32(cfg.Database.MinConns),
		})
		if err != nil {
			logger.Error("database unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		repo := repository.NewArchiveRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Error("archive schema", "error", err)
			os.Exit(1)
		}
		archive = repo
	} else {
		logger.Info("no database configured, revision archive disabled")
	}

	client := preview.NewClient(preview.Options{
		BaseURL:       cfg.Preview.BaseURL,
		Timeout:       cfg.Preview.Timeout,
		ReportTimeout: cfg.Preview.ReportTimeout,
		RatePerSec:    cfg.Preview.RatePerSec,
		Burst:         cfg.Preview.Burst,
	})
	cat := catalog.NewService(client)
	if err := cat.Refresh(ctx); err != nil {
		// The monitor retries; until then catalog fields accept any value.
		logger.Warn("catalog refresh failed", "error", err)
	}

	res := schema.New()
	wb := service.NewWorkbench(service.Deps{
		Resolver:     res,
		Catalog:      cat,
		Collaborator: client,
		Store:        repository.NewSessionRepository(rdb),
		GlassWindow:  cfg.Workbench.GlassDebounce,
		WindWindow:   cfg.Workbench.WindDebounce,
	}, archive)

	monitor := service.NewMonitor(wb)
	if err := monitor.Start(cfg.Workbench.FigureRefreshSpec, cfg.Workbench.CatalogRefreshSpec); err != nil {
		logger.Error("monitor", "error", err)
		os.Exit(1)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Logger:      logger,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
		DB:          db,
		Redis:       rdb,
		Workbench:   wb,
		Resolver:    res,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.App.Environment, "version", cfg.App.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	monitor.Stop()
	wb.Shutdown()
}
