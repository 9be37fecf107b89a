package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"newshub/internal/config"
	pgRepo "newshub/internal/infra/adapter/persistence/postgres"
	"newshub/internal/infra/db"
	"newshub/internal/infra/provider"
	"newshub/internal/infra/scraper"
	workerPkg "newshub/internal/infra/worker"
	"newshub/internal/observability/logging"
	"newshub/internal/usecase/ingest"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerConfig := workerPkg.LoadConfigFromEnv()
	logger.Info("worker configuration loaded",
		slog.Duration("interval", workerConfig.Interval()),
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("cycle_timeout", workerConfig.CycleTimeout),
		slog.Int("health_port", workerConfig.HealthPort),
		slog.Int("metrics_port", workerConfig.MetricsPort))

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", workerConfig.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	metricsServer := workerPkg.NewMetricsServer(fmt.Sprintf(":%d", workerConfig.MetricsPort), logger)
	go func() {
		if err := metricsServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", slog.Any("error", err))
		}
	}()

	go db.ReportPoolStats(ctx, database, 15*time.Second)

	scheduler := setupScheduler(logger, database, workerConfig)
	healthServer.SetReady(true)

	if workerConfig.CronSchedule != "" {
		runner, err := workerPkg.NewCronRunner(
			workerConfig.CronSchedule, workerConfig.Timezone, workerConfig.CycleTimeout,
			func(ctx context.Context) error {
				_, err := scheduler.RunCycle(ctx)
				return err
			})
		if err != nil {
			logger.Error("failed to start cron runner", slog.Any("error", err))
			os.Exit(1)
		}
		runner.Start()
		logger.Info("ingestion worker started in cron mode",
			slog.String("schedule", workerConfig.CronSchedule))
		<-ctx.Done()
		runner.Stop()
	} else {
		scheduler.Start()
		logger.Info("ingestion worker started in interval mode",
			slog.Duration("interval", workerConfig.Interval()))
		<-ctx.Done()
		scheduler.Stop()
	}

	logger.Info("ingestion worker stopped")
}

// initDatabase opens the connection pool and applies pending migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// setupScheduler wires the provider clients, content scraper and repository
// into an ingestion scheduler. Providers without an API key are skipped.
func setupScheduler(logger *slog.Logger, database *sql.DB, cfg workerPkg.WorkerConfig) *ingest.Scheduler {
	selectors := config.LoadProviderSelectors()

	newsAPI, guardian, nyt := provider.ClientsFromEnv(logger)
	sources := ingest.BuildSources(newsAPI, guardian, nyt, selectors)
	if len(sources) == 0 {
		logger.Warn("no provider API keys configured, ingestion cycles will fetch nothing")
	}

	contentScraper := scraper.NewContentScraper(scraper.LoadConfigFromEnv(), nil)
	aggregator := ingest.NewAggregator(sources, contentScraper)
	repo := pgRepo.NewArticleRepo(database)

	return ingest.NewScheduler(aggregator, repo, cfg.Interval())
}
