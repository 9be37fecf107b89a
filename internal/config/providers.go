// Package config holds application-level configuration that goes beyond
// single environment variables, such as the upstream provider selector lists.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ProviderSelectors defines which slices of each upstream API the pipeline
// pulls on every cycle. The lists mirror the providers' own taxonomy: NewsAPI
// categories, Guardian sections, NYT newswire sections.
type ProviderSelectors struct {
	NewsAPI struct {
		Country    string   `yaml:"country"`
		Categories []string `yaml:"categories"`
		PageSize   int      `yaml:"page_size"`
	} `yaml:"newsapi"`

	Guardian struct {
		Sections []string `yaml:"sections"`
		PageSize int      `yaml:"page_size"`
	} `yaml:"guardian"`

	NYT struct {
		Sections []string `yaml:"sections"`
		Limit    int      `yaml:"limit"`
	} `yaml:"nyt"`
}

// DefaultProviderSelectors returns the built-in selector lists.
func DefaultProviderSelectors() ProviderSelectors {
	var s ProviderSelectors
	s.NewsAPI.Country = "us"
	s.NewsAPI.Categories = []string{"general", "business", "technology", "sports", "entertainment", "health", "science"}
	s.NewsAPI.PageSize = 20
	s.Guardian.Sections = []string{"news", "sport", "culture", "business", "technology", "politics"}
	s.Guardian.PageSize = 20
	// A single newswire section keeps the low-frequency provider inside its quota.
	s.NYT.Sections = []string{"all"}
	s.NYT.Limit = 10
	return s
}

// LoadProviderSelectors returns the selector configuration, reading the YAML
// file named by PROVIDERS_CONFIG when set and falling back to the built-in
// defaults otherwise. An unreadable or invalid file also falls back, with a
// warning, so a bad config never keeps the worker from starting.
func LoadProviderSelectors() ProviderSelectors {
	path := os.Getenv("PROVIDERS_CONFIG")
	if path == "" {
		return DefaultProviderSelectors()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("could not read providers config, using defaults",
			slog.String("path", path),
			slog.Any("error", err))
		return DefaultProviderSelectors()
	}

	selectors, err := ParseProviderSelectors(data)
	if err != nil {
		slog.Warn("invalid providers config, using defaults",
			slog.String("path", path),
			slog.Any("error", err))
		return DefaultProviderSelectors()
	}

	slog.Info("provider selectors loaded",
		slog.String("path", path),
		slog.Int("newsapi_categories", len(selectors.NewsAPI.Categories)),
		slog.Int("guardian_sections", len(selectors.Guardian.Sections)),
		slog.Int("nyt_sections", len(selectors.NYT.Sections)))
	return selectors
}

// ParseProviderSelectors parses YAML selector configuration. Fields left empty
// in the file inherit the defaults.
func ParseProviderSelectors(data []byte) (ProviderSelectors, error) {
	selectors := DefaultProviderSelectors()
	if err := yaml.Unmarshal(data, &selectors); err != nil {
		return ProviderSelectors{}, fmt.Errorf("parse providers config: %w", err)
	}
	if err := selectors.validate(); err != nil {
		return ProviderSelectors{}, err
	}
	return selectors, nil
}

func (s *ProviderSelectors) validate() error {
	if s.NewsAPI.PageSize <= 0 || s.NewsAPI.PageSize > 100 {
		return fmt.Errorf("newsapi page_size must be in 1..100, got %d", s.NewsAPI.PageSize)
	}
	if s.Guardian.PageSize <= 0 || s.Guardian.PageSize > 200 {
		return fmt.Errorf("guardian page_size must be in 1..200, got %d", s.Guardian.PageSize)
	}
	if s.NYT.Limit <= 0 || s.NYT.Limit > 500 {
		return fmt.Errorf("nyt limit must be in 1..500, got %d", s.NYT.Limit)
	}
	if len(s.NewsAPI.Categories) == 0 && len(s.Guardian.Sections) == 0 && len(s.NYT.Sections) == 0 {
		return fmt.Errorf("providers config selects nothing to fetch")
	}
	return nil
}
