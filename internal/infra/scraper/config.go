package scraper

import (
	"time"

	"newshub/pkg/config"
)

// Config holds content scraper settings.
type Config struct {
	// MinInterval is the minimum time between any two scrape requests,
	// shared across every caller of the scraper instance.
	MinInterval time.Duration

	// Timeout bounds a single page fetch.
	Timeout time.Duration

	// MinContentLength is the extraction-success threshold: shorter results
	// are treated as failed extractions, not as usable content. This is
	// deliberately stricter than the backfill substance threshold.
	MinContentLength int

	// MaxBodySize bounds the HTML read from a page.
	MaxBodySize int64

	// UserAgent is sent with every page fetch. News sites routinely refuse
	// obviously robotic agents, so a browser-like string is used.
	UserAgent string

	// BlockedHosts are host substrings that are rejected without a network
	// call. These platforms block automated fetches anyway.
	BlockedHosts []string
}

// DefaultConfig returns production scraper settings.
func DefaultConfig() Config {
	return Config{
		MinInterval:      2 * time.Second,
		Timeout:          30 * time.Second,
		MinContentLength: 200,
		MaxBodySize:      10 * 1024 * 1024,
		UserAgent:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		BlockedHosts: []string{
			"youtube.com",
			"twitter.com",
			"facebook.com",
			"instagram.com",
			"tiktok.com",
			"linkedin.com",
		},
	}
}

// LoadConfigFromEnv reads scraper settings from the environment, falling back
// to defaults. Intervals and timeouts are given in whole seconds.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.MinInterval = time.Duration(config.GetEnvInt("SCRAPE_MIN_INTERVAL", 2)) * time.Second
	cfg.Timeout = time.Duration(config.GetEnvInt("SCRAPE_TIMEOUT", 30)) * time.Second
	cfg.MinContentLength = config.GetEnvInt("SCRAPE_MIN_CONTENT_LENGTH", cfg.MinContentLength)
	return cfg
}
