package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/mixlog/internal/config"
	"github.com/mamadbah2/mixlog/internal/repository/memory"
	"github.com/mamadbah2/mixlog/internal/repository/mongodb"
	"github.com/mamadbah2/mixlog/internal/repository/sheets"
	"github.com/mamadbah2/mixlog/internal/scheduler"
	"github.com/mamadbah2/mixlog/internal/server/handlers"
	"github.com/mamadbah2/mixlog/internal/server/router"
	mixsvc "github.com/mamadbah2/mixlog/internal/service/mixes"
	reportingsvc "github.com/mamadbah2/mixlog/internal/service/reporting"
	"github.com/mamadbah2/mixlog/pkg/clients/notify"
	"github.com/mamadbah2/mixlog/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	location, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("failed to load timezone", zap.Error(err))
	}

	var (
		store        mixsvc.Store
		snapshotSink reportingsvc.SnapshotSink
	)
	switch cfg.Store.Driver {
	case config.StoreMemory:
		baseLogger.Warn("using in-memory record store, data is lost on restart")
		store = memory.NewStore()
	default:
		connectCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named(baseLogger, "repo.mongodb"))
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoRepo
		snapshotSink = mongoRepo
	}

	var mirror mixsvc.Mirror
	if cfg.Sheets.Enabled() {
		sheetsClient, err := sheets.NewClient(context.Background(), cfg.Sheets)
		if err != nil {
			baseLogger.Fatal("failed to init sheets client", zap.Error(err))
		}
		sheetsMirror, err := sheets.NewMirror(sheetsClient, cfg.Sheets.Range, location, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets mirror", zap.Error(err))
		}
		mirror = sheetsMirror
		baseLogger.Info("google sheets mirror enabled")
	}

	mixService := mixsvc.NewService(store, mirror, logger.Named(baseLogger, "svc.mixes"))
	reportingService := reportingsvc.NewService(mixService, snapshotSink, location, logger.Named(baseLogger, "svc.reporting"))

	mixHandler := handlers.NewMixHandler(mixService, reportingService, location, logger.Named(baseLogger, "handlers.mixes"))
	engine := router.New(mixHandler, cfg.Server.AllowedOrigins, logger.Named(baseLogger, "router"))

	var notifier notify.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("summary notifications enabled")
	} else {
		baseLogger.Warn("notify webhook missing, daily summaries are stored but not sent")
	}

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingService, notifier, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
