// Package entity defines the core domain entities and validation logic for the
// application. It contains the canonical Article record shared by the ingestion
// pipeline and the read-side API, along with domain-specific errors.
package entity

import (
	"strings"
	"time"
)

// Article is the canonical, provider-agnostic news article record.
// Every upstream payload is normalized into this shape before persistence.
//
// ExternalID is the dedup key: it is derived deterministically from the
// provider tag plus the provider's native id (or the last segment of the
// article URL) and uniquely identifies the article across all ingestion
// cycles. Re-ingesting the same upstream item updates the existing row.
type Article struct {
	ID          int64
	ExternalID  string
	Title       string
	Description string
	Content     string // may be empty until a scrape pass fills it in
	URL         string
	ImageURL    string
	SourceName  string
	SourceID    string
	Author      string
	Category    string
	Tags        []string
	PublishedAt time.Time
	ScrapedAt   *time.Time // ingestion time; stamped on create, refreshed on update
	Language    string
	Country     string
	IsActive    bool
}

// minSubstantialContent is the minimum trimmed content length below which an
// article is considered "thin" and eligible for backfill.
const minSubstantialContent = 100

// HasSubstantialContent reports whether the article already carries enough
// body text to skip content backfill. The 100-character threshold matches the
// substance check used by the on-demand scrape endpoint; the scraper's own
// extraction-success threshold is a separate, stricter limit.
func (a *Article) HasSubstantialContent() bool {
	return len(strings.TrimSpace(a.Content)) >= minSubstantialContent
}
