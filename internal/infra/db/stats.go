package db

import (
	"context"
	"database/sql"
	"time"

	"newshub/internal/observability/metrics"
)

// ReportPoolStats publishes the pool's connection gauges once immediately and
// then every interval, until the context is cancelled. Run it as a goroutine
// next to the pool it watches.
func ReportPoolStats(ctx context.Context, pool *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		publishPoolStats(pool)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func publishPoolStats(pool *sql.DB) {
	stats := pool.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
}
