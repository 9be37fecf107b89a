package worker

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer exposes the Prometheus default registry on /metrics for the
// worker process, which has no other HTTP surface.
type MetricsServer struct {
	addr   string
	logger *slog.Logger
	server *http.Server
}

// NewMetricsServer creates a metrics server listening on addr.
func NewMetricsServer(addr string, logger *slog.Logger) *MetricsServer {
	return &MetricsServer{addr: addr, logger: logger}
}

// Start serves /metrics until the context is cancelled. Returns
// http.ErrServerClosed on graceful shutdown.
func (m *MetricsServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	m.server = &http.Server{
		Addr:         m.addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		m.logger.Info("metrics server starting", slog.String("addr", m.addr))
		if err := m.server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		m.logger.Info("metrics server shutting down")
		if err := m.server.Shutdown(shutdownCtx); err != nil {
			m.logger.Error("metrics server shutdown failed", slog.Any("error", err))
			return err
		}
		return http.ErrServerClosed

	case err := <-errChan:
		if err != http.ErrServerClosed {
			m.logger.Error("metrics server failed", slog.Any("error", err))
		}
		return err
	}
}
