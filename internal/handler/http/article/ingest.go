package article

import (
	"context"
	"errors"
	"net/http"

	"newshub/internal/handler/http/respond"
	"newshub/internal/usecase/ingest"
)

// RunCycleFunc triggers one ingestion cycle and reports its outcome.
type RunCycleFunc func(ctx context.Context) (*ingest.CycleStats, error)

// IngestHandler serves POST /api/ingest/run, kicking off an ingestion cycle
// synchronously and returning its stats.
func IngestHandler(run RunCycleFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if run == nil {
			respond.Error(w, http.StatusServiceUnavailable, errors.New("ingestion is not available on this instance"))
			return
		}

		stats, err := run(r.Context())
		if err != nil {
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		respond.JSON(w, http.StatusOK, map[string]any{
			"fetched":     stats.Fetched,
			"backfilled":  stats.Backfilled,
			"created":     stats.Created,
			"updated":     stats.Updated,
			"failed":      stats.Failed,
			"duration_ms": stats.Duration.Milliseconds(),
		})
	}
}
