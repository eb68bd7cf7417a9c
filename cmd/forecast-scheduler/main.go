// forecast-scheduler publishes a scheduled forecast refresh on a cron spec,
// so snapshots roll over to the new month even when no item changes.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"bilancio/internal/amqp"
	"bilancio/internal/config"
	"bilancio/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	schedLog := logger.WithComponent(log.ComponentScheduler)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		schedLog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		schedLog.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	c := cron.New()
	_, err = c.AddFunc(cfg.RefreshCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		now := time.Now()
		if err := amqpClient.PublishForecastRefresh(ctx, now.Year(), int(now.Month()), amqp.ReasonScheduled); err != nil {
			schedLog.Error("Failed to publish scheduled refresh", "error", err)
			return
		}
		schedLog.Info("Scheduled refresh published", "year", now.Year(), "month", int(now.Month()))
	})
	if err != nil {
		schedLog.Error("Invalid cron spec", "spec", cfg.RefreshCronSpec, "error", err)
		os.Exit(1)
	}

	c.Start()
	schedLog.Info("Scheduler started", "spec", cfg.RefreshCronSpec)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	schedLog.Info("Shutdown signal received", "signal", sig.String())

	// Stop scheduling and wait for a running job to finish.
	<-c.Stop().Done()
	schedLog.Info("Scheduler stopped gracefully")
}
