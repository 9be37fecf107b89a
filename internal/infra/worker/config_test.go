package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30, cfg.IntervalMinutes)
	assert.Empty(t, cfg.CronSchedule)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 20*time.Minute, cfg.CycleTimeout)
	assert.Equal(t, 9091, cfg.HealthPort)
	assert.Equal(t, 9092, cfg.MetricsPort)
	assert.NoError(t, cfg.Validate())
}

func TestConfigInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IntervalMinutes = 15
	assert.Equal(t, 15*time.Minute, cfg.Interval())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorkerConfig)
		valid  bool
	}{
		{"defaults", func(*WorkerConfig) {}, true},
		{"valid cron", func(c *WorkerConfig) { c.CronSchedule = "*/30 * * * *" }, true},
		{"invalid cron", func(c *WorkerConfig) { c.CronSchedule = "not a cron" }, false},
		{"six field cron", func(c *WorkerConfig) { c.CronSchedule = "0 0 0 * * *" }, false},
		{"interval too small", func(c *WorkerConfig) { c.IntervalMinutes = 0 }, false},
		{"interval too large", func(c *WorkerConfig) { c.IntervalMinutes = 1441 }, false},
		{"bad timezone", func(c *WorkerConfig) { c.Timezone = "Mars/Olympus" }, false},
		{"zero timeout", func(c *WorkerConfig) { c.CycleTimeout = 0 }, false},
		{"privileged health port", func(c *WorkerConfig) { c.HealthPort = 80 }, false},
		{"metrics port too large", func(c *WorkerConfig) { c.MetricsPort = 70000 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	cfg := LoadConfigFromEnv()
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("INGEST_INTERVAL_MINUTES", "10")
	t.Setenv("INGEST_CRON", "0 * * * *")
	t.Setenv("WORKER_TIMEZONE", "Europe/London")
	t.Setenv("INGEST_CYCLE_TIMEOUT", "5m")
	t.Setenv("WORKER_HEALTH_PORT", "8081")
	t.Setenv("WORKER_METRICS_PORT", "8082")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, 10, cfg.IntervalMinutes)
	assert.Equal(t, "0 * * * *", cfg.CronSchedule)
	assert.Equal(t, "Europe/London", cfg.Timezone)
	assert.Equal(t, 5*time.Minute, cfg.CycleTimeout)
	assert.Equal(t, 8081, cfg.HealthPort)
	assert.Equal(t, 8082, cfg.MetricsPort)
}

func TestLoadConfigFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("INGEST_INTERVAL_MINUTES", "-5")
	t.Setenv("INGEST_CRON", "every day at noon")
	t.Setenv("WORKER_TIMEZONE", "Nowhere/Town")
	t.Setenv("INGEST_CYCLE_TIMEOUT", "-1m")
	t.Setenv("WORKER_HEALTH_PORT", "99999")

	cfg := LoadConfigFromEnv()
	defaults := DefaultConfig()

	assert.Equal(t, defaults.IntervalMinutes, cfg.IntervalMinutes)
	assert.Empty(t, cfg.CronSchedule, "bad cron falls back to interval mode")
	assert.Equal(t, defaults.Timezone, cfg.Timezone)
	assert.Equal(t, defaults.CycleTimeout, cfg.CycleTimeout)
	assert.Equal(t, defaults.HealthPort, cfg.HealthPort)
}
