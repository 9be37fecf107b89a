// Package article provides read-side use cases over stored articles:
// listing, filtering, keyword search, and on-demand content scraping.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrContentUnavailable indicates that a scrape attempt could not extract
	// substantial content from the article's page.
	ErrContentUnavailable = errors.New("could not extract content from URL")
)
