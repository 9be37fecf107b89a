// Package worker holds the runtime scaffolding of the ingestion worker:
// configuration, the optional cron trigger, and the health and metrics
// HTTP servers.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"newshub/pkg/config"
)

// WorkerConfig holds the configuration for the ingestion worker.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// Loading is fail-open: an invalid value falls back to its default with a
// warning, so a bad environment never keeps the worker from starting.
type WorkerConfig struct {
	// IntervalMinutes is the pause between ingestion cycles in interval mode.
	// Ignored when CronSchedule is set.
	// Range: 1-1440
	// Default: 30
	IntervalMinutes int

	// CronSchedule is an optional cron expression ("minute hour day month
	// weekday"). When set, cycles run on this schedule instead of the fixed
	// interval and the immediate startup cycle still runs.
	// Default: "" (interval mode)
	CronSchedule string

	// Timezone is the IANA timezone name used to evaluate CronSchedule.
	// Default: "UTC"
	Timezone string

	// CycleTimeout bounds a single ingestion cycle. A cycle that exceeds it
	// is cancelled and counted as failed.
	// Default: 20 minutes
	CycleTimeout time.Duration

	// HealthPort is the port for the health check HTTP server.
	// Range: 1024-65535
	// Default: 9091
	HealthPort int

	// MetricsPort is the port for the Prometheus metrics HTTP server.
	// Range: 1024-65535
	// Default: 9092
	MetricsPort int
}

// DefaultConfig returns a WorkerConfig with production defaults: a 30-minute
// interval, no cron schedule, and a cycle timeout short enough that a hung
// cycle never overlaps the next one.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		IntervalMinutes: 30,
		CronSchedule:    "",
		Timezone:        "UTC",
		CycleTimeout:    20 * time.Minute,
		HealthPort:      9091,
		MetricsPort:     9092,
	}
}

// Interval returns the cycle interval as a duration.
func (c *WorkerConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// Validate checks the configuration values. All invalid fields are collected
// and reported together.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateIntRange(c.IntervalMinutes, 1, 1440); err != nil {
		errs = append(errs, fmt.Errorf("interval minutes: %w", err))
	}
	if c.CronSchedule != "" {
		if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
			errs = append(errs, fmt.Errorf("cron schedule: %w", err))
		}
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.CycleTimeout); err != nil {
		errs = append(errs, fmt.Errorf("cycle timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := config.ValidateIntRange(c.MetricsPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with per-field fallback to defaults.
//
// Environment variables:
//   - INGEST_INTERVAL_MINUTES: Integer 1-1440 (default: 30)
//   - INGEST_CRON: Cron expression, empty for interval mode (default: "")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - INGEST_CYCLE_TIMEOUT: Duration string, e.g. "20m" (default: 20 minutes)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
//   - WORKER_METRICS_PORT: Integer 1024-65535 (default: 9092)
func LoadConfigFromEnv() WorkerConfig {
	defaults := DefaultConfig()
	cfg := WorkerConfig{
		IntervalMinutes: config.GetEnvInt("INGEST_INTERVAL_MINUTES", defaults.IntervalMinutes),
		CronSchedule:    config.GetEnvString("INGEST_CRON", defaults.CronSchedule),
		Timezone:        config.GetEnvString("WORKER_TIMEZONE", defaults.Timezone),
		CycleTimeout:    config.GetEnvDuration("INGEST_CYCLE_TIMEOUT", defaults.CycleTimeout),
		HealthPort:      config.GetEnvInt("WORKER_HEALTH_PORT", defaults.HealthPort),
		MetricsPort:     config.GetEnvInt("WORKER_METRICS_PORT", defaults.MetricsPort),
	}

	if err := config.ValidateIntRange(cfg.IntervalMinutes, 1, 1440); err != nil {
		slog.Warn("invalid ingest interval, using default",
			slog.Int("value", cfg.IntervalMinutes),
			slog.Int("default", defaults.IntervalMinutes),
			slog.Any("error", err))
		cfg.IntervalMinutes = defaults.IntervalMinutes
	}
	if cfg.CronSchedule != "" {
		if _, err := cron.ParseStandard(cfg.CronSchedule); err != nil {
			slog.Warn("invalid cron schedule, falling back to interval mode",
				slog.String("value", cfg.CronSchedule),
				slog.Any("error", err))
			cfg.CronSchedule = ""
		}
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		slog.Warn("invalid timezone, using default",
			slog.String("value", cfg.Timezone),
			slog.String("default", defaults.Timezone),
			slog.Any("error", err))
		cfg.Timezone = defaults.Timezone
	}
	if err := config.ValidatePositiveDuration(cfg.CycleTimeout); err != nil {
		slog.Warn("invalid cycle timeout, using default",
			slog.Duration("value", cfg.CycleTimeout),
			slog.Duration("default", defaults.CycleTimeout),
			slog.Any("error", err))
		cfg.CycleTimeout = defaults.CycleTimeout
	}
	if err := config.ValidateIntRange(cfg.HealthPort, 1024, 65535); err != nil {
		slog.Warn("invalid health port, using default",
			slog.Int("value", cfg.HealthPort),
			slog.Int("default", defaults.HealthPort),
			slog.Any("error", err))
		cfg.HealthPort = defaults.HealthPort
	}
	if err := config.ValidateIntRange(cfg.MetricsPort, 1024, 65535); err != nil {
		slog.Warn("invalid metrics port, using default",
			slog.Int("value", cfg.MetricsPort),
			slog.Int("default", defaults.MetricsPort),
			slog.Any("error", err))
		cfg.MetricsPort = defaults.MetricsPort
	}

	return cfg
}
