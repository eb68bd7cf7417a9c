package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"bilancio/internal/amqp"
	"bilancio/internal/config"
	"bilancio/internal/log"
	"bilancio/internal/sheets"
	gsheet "bilancio/internal/sheets/google"
	"bilancio/internal/storage"
	"bilancio/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	workerLog := logger.WithComponent(log.ComponentWorker)

	workerLog.Info("Starting bilancio-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		workerLog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		workerLog.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Google Sheets mirroring is optional
	var sheetWriter sheets.ForecastWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			workerLog.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		sheetWriter = client
		workerLog.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		workerLog.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		workerLog.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fw := worker.NewForecastWorker(repo, sheetWriter, cfg.HorizonMonths, cfg.ExportFilePath)

	// Recompute on startup to recover from any refresh messages missed while
	// the worker was down.
	workerLog.Info("Performing startup recompute", "horizon_months", cfg.HorizonMonths)
	if err := fw.RecomputeCurrent(ctx); err != nil {
		workerLog.Error("Startup recompute failed", "error", err)
		// Don't exit - continue with normal operation
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeForecastRefresh(gctx, func(msg *amqp.ForecastRefreshMessage) error {
			return fw.HandleRefreshMessage(gctx, msg)
		})
	})

	g.Go(func() error {
		return fw.RunPeriodic(gctx, cfg.RefreshInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		workerLog.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	workerLog.Info("Worker shutdown complete")
}
