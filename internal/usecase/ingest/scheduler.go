package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"newshub/internal/domain/entity"
	"newshub/internal/observability/metrics"
	"newshub/internal/repository"
)

const (
	// DefaultInterval is the pause between successful cycles.
	DefaultInterval = 30 * time.Minute

	// errorCooldown is the shortened pause after a failed cycle, so a
	// transient outage is retried well before the next full interval.
	errorCooldown = 60 * time.Second
)

// CycleStats summarizes one ingestion cycle.
type CycleStats struct {
	Fetched    int
	Backfilled int
	Created    int
	Updated    int
	Failed     int
	Duration   time.Duration
}

// Scheduler runs ingestion cycles on a fixed interval. The first cycle runs
// immediately on Start; after a failed cycle the next attempt is pulled
// forward to the error cooldown.
type Scheduler struct {
	aggregator *Aggregator
	repo       repository.ArticleRepository
	interval   time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewScheduler creates a scheduler that persists each cycle through repo.
// A non-positive interval falls back to the default.
func NewScheduler(aggregator *Aggregator, repo repository.ArticleRepository, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		aggregator: aggregator,
		repo:       repo,
		interval:   interval,
	}
}

// Start launches the background ingestion loop. Calling Start on a running
// scheduler logs and returns without side effects.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		slog.Warn("ingestion scheduler already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	slog.Info("ingestion scheduler started",
		slog.Duration("interval", s.interval))
	go s.loop(ctx)
}

// Stop halts the loop and waits for an in-flight cycle to finish. Calling
// Stop on a stopped scheduler logs and returns without side effects.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		slog.Warn("ingestion scheduler not running")
		return
	}
	cancel, done := s.cancel, s.done
	s.running = false
	s.mu.Unlock()

	cancel()
	<-done
	slog.Info("ingestion scheduler stopped")
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	timer := time.NewTimer(0) // first cycle fires immediately
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		wait := s.interval
		if _, err := s.RunCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Error("ingestion cycle failed",
				slog.Any("error", err),
				slog.Duration("retry_in", errorCooldown))
			wait = errorCooldown
		}
		timer.Reset(wait)
	}
}

// RunCycle executes one full fetch-backfill-persist pass. The whole batch is
// written in a single transaction; a failure on one article is logged and
// counted without aborting the rest of the batch.
func (s *Scheduler) RunCycle(ctx context.Context) (*CycleStats, error) {
	start := time.Now()
	stats := &CycleStats{}

	articles := s.aggregator.FetchAll(ctx)
	stats.Fetched = len(articles)
	if ctx.Err() != nil {
		return stats, ctx.Err()
	}

	stats.Backfilled = s.aggregator.BackfillContent(ctx, articles)

	if len(articles) > 0 {
		if err := s.persistBatch(ctx, articles, stats); err != nil {
			metrics.RecordCycle(false, time.Since(start))
			return stats, err
		}
	}

	stats.Duration = time.Since(start)
	metrics.RecordCycle(true, stats.Duration)
	metrics.RecordArticlesPersisted(stats.Created, stats.Updated)

	slog.Info("ingestion cycle completed",
		slog.Int("fetched", stats.Fetched),
		slog.Int("backfilled", stats.Backfilled),
		slog.Int("created", stats.Created),
		slog.Int("updated", stats.Updated),
		slog.Int("failed", stats.Failed),
		slog.Duration("duration", stats.Duration))
	return stats, nil
}

func (s *Scheduler) persistBatch(ctx context.Context, articles []*entity.Article, stats *CycleStats) error {
	batch, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin article batch: %w", err)
	}

	// scraped_at carries the ingestion time: stamped on create and refreshed
	// on every update. Backfill already stamped the articles it touched this
	// cycle; everything else gets the cycle's timestamp here.
	ingestedAt := time.Now().UTC()

	for _, art := range articles {
		if art.ScrapedAt == nil {
			art.ScrapedAt = &ingestedAt
		}
		existing, err := batch.FindByExternalID(ctx, art.ExternalID)
		if err != nil {
			stats.Failed++
			slog.Warn("lookup failed, skipping article",
				slog.String("external_id", art.ExternalID),
				slog.Any("error", err))
			continue
		}

		if existing == nil {
			if err := batch.Insert(ctx, art); err != nil {
				stats.Failed++
				slog.Warn("insert failed, skipping article",
					slog.String("external_id", art.ExternalID),
					slog.String("url", art.URL),
					slog.Any("error", err))
				continue
			}
			stats.Created++
			continue
		}

		if err := batch.Update(ctx, existing, art); err != nil {
			stats.Failed++
			slog.Warn("update failed, skipping article",
				slog.String("external_id", art.ExternalID),
				slog.Any("error", err))
			continue
		}
		stats.Updated++
	}

	if err := batch.Commit(); err != nil {
		if rbErr := batch.Rollback(); rbErr != nil {
			slog.Error("rollback after failed commit",
				slog.Any("error", rbErr))
		}
		return fmt.Errorf("commit article batch: %w", err)
	}
	return nil
}
