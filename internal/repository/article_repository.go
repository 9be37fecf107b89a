package repository

import (
	"context"
	"time"

	"newshub/internal/domain/entity"
)

// ArticleFilters contains optional filters for article listing.
// Nil/empty fields are ignored.
type ArticleFilters struct {
	Sources    []string
	Categories []string
	Authors    []string
	Language   string
	Country    string
	From       *time.Time // published_at >= From
	To         *time.Time // published_at <= To
}

// FilterOptions lists the distinct values available for building filter UIs.
type FilterOptions struct {
	Sources    []string
	Categories []string
	Authors    []string
}

// ArticleRepository is the persistence boundary for articles. The ingestion
// pipeline only depends on Begin (and the ArticleBatch it returns) plus
// UpdateContent for the on-demand scrape path; the remaining methods serve the
// read-side API.
type ArticleRepository interface {
	// Begin opens a transaction-scoped batch session for one ingestion cycle.
	// The caller must end the session with Commit or Rollback.
	Begin(ctx context.Context) (ArticleBatch, error)

	// Get retrieves an article by primary key. Returns entity.ErrNotFound
	// if no row exists.
	Get(ctx context.Context, id int64) (*entity.Article, error)

	// List retrieves active articles matching the filters, ordered by
	// published_at descending, with offset/limit pagination.
	List(ctx context.Context, filters ArticleFilters, offset, limit int) ([]*entity.Article, error)

	// Count returns the number of active articles matching the filters.
	Count(ctx context.Context, filters ArticleFilters) (int64, error)

	// Search finds active articles whose title, description, or content
	// contains every keyword (case-insensitive substring match), ordered by
	// published_at descending.
	Search(ctx context.Context, keywords []string, offset, limit int) ([]*entity.Article, error)

	// FilterOptions returns the distinct source names, categories, and
	// authors present among active articles.
	FilterOptions(ctx context.Context) (*FilterOptions, error)

	// UpdateContent overwrites the content of a stored article and refreshes
	// its scraped_at timestamp.
	UpdateContent(ctx context.Context, id int64, content string) error
}

// ArticleBatch is a transaction-scoped session used by the scheduler to commit
// one ingestion cycle atomically. Create-or-update per article runs against
// this session; nothing is visible to readers until Commit.
type ArticleBatch interface {
	// FindByExternalID looks up an existing article by its dedup key.
	// Returns (nil, nil) when no row exists.
	FindByExternalID(ctx context.Context, externalID string) (*entity.Article, error)

	// Insert creates a new article row and fills in its assigned ID.
	Insert(ctx context.Context, article *entity.Article) error

	// Update overwrites the mutable fields of an existing row identified by
	// existing.ID with the values from incoming, refreshing scraped_at.
	Update(ctx context.Context, existing *entity.Article, incoming *entity.Article) error

	// Commit makes the cycle's writes visible.
	Commit() error

	// Rollback discards the cycle's writes. Safe to call after Commit.
	Rollback() error
}
