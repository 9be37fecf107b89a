package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"newshub/internal/config"
	hhttp "newshub/internal/handler/http"
	artHandler "newshub/internal/handler/http/article"
	"newshub/internal/handler/http/auth"
	"newshub/internal/handler/http/requestid"
	pgRepo "newshub/internal/infra/adapter/persistence/postgres"
	"newshub/internal/infra/db"
	"newshub/internal/infra/provider"
	"newshub/internal/infra/scraper"
	"newshub/internal/observability/logging"
	"newshub/internal/repository"
	artUC "newshub/internal/usecase/article"
	"newshub/internal/usecase/ingest"
)

const version = "1.0.0"

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go db.ReportPoolStats(ctx, database, 15*time.Second)

	handler := buildHandler(logger, database)
	runServer(logger, handler)
}

// buildHandler assembles the route table and wraps it in the shared
// middleware chain.
func buildHandler(logger *slog.Logger, database *sql.DB) http.Handler {
	repo := pgRepo.NewArticleRepo(database)
	contentScraper := scraper.NewContentScraper(scraper.LoadConfigFromEnv(), nil)
	svc := &artUC.Service{Repo: repo, Scraper: contentScraper}

	mux := http.NewServeMux()
	artHandler.Register(mux, svc, onDemandCycle(logger, repo, contentScraper))

	creds := auth.CredentialsFromEnv()
	if !creds.Configured() {
		logger.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, token endpoint disabled")
	}
	mux.Handle("POST   /auth/token", auth.TokenHandler(creds))

	mux.Handle("GET    /healthz", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("GET    /healthz/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET    /healthz/live", &hhttp.LiveHandler{})
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())

	return hhttp.Chain(mux,
		requestid.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		hhttp.LimitRequestBody(1<<20),
	)
}

// onDemandCycle builds the cycle trigger behind POST /api/ingest/run. It uses
// the same aggregation pipeline as the worker, so a manual run behaves
// exactly like a scheduled one. Returns nil when no provider is configured.
func onDemandCycle(logger *slog.Logger, repo repository.ArticleRepository, contentScraper *scraper.ContentScraper) artHandler.RunCycleFunc {
	newsAPI, guardian, nyt := provider.ClientsFromEnv(logger)
	sources := ingest.BuildSources(newsAPI, guardian, nyt, config.LoadProviderSelectors())
	if len(sources) == 0 {
		logger.Warn("no provider API keys configured, POST /api/ingest/run disabled")
		return nil
	}

	aggregator := ingest.NewAggregator(sources, contentScraper)
	sched := ingest.NewScheduler(aggregator, repo, ingest.DefaultInterval)
	return sched.RunCycle
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler) {
	addr := ":" + envOr("API_PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr), slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
