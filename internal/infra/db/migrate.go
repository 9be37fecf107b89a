package db

import (
	"database/sql"
)

// MigrateUp creates the articles schema if it does not exist.
// The migration is idempotent so it can run on every worker start.
func MigrateUp(pool *sql.DB) error {
	if _, err := pool.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id           SERIAL PRIMARY KEY,
    external_id  VARCHAR(255) NOT NULL UNIQUE,
    title        VARCHAR(500) NOT NULL,
    description  TEXT,
    content      TEXT,
    url          VARCHAR(1000) NOT NULL,
    image_url    VARCHAR(1000),
    source_name  VARCHAR(255) NOT NULL,
    source_id    VARCHAR(255),
    author       VARCHAR(255),
    category     VARCHAR(100),
    tags         TEXT[] NOT NULL DEFAULT '{}',
    published_at TIMESTAMPTZ NOT NULL,
    scraped_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    language     VARCHAR(10) DEFAULT 'en',
    country      VARCHAR(10) DEFAULT 'us',
    is_active    BOOLEAN DEFAULT TRUE
)`); err != nil {
		return err
	}

	indexes := []string{
		// external_id lookups drive the create-or-update path every cycle
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_articles_external_id ON articles(external_id)`,
		// all read queries order by published_at DESC
		`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_source_category ON articles(source_name, category)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_source_id ON articles(source_id)`,
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm speeds up ILIKE search; ignore failure when the extension is
	// unavailable or the role lacks privileges.
	_, _ = pool.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_title_gin ON articles USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_description_gin ON articles USING gin(description gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		_, _ = pool.Exec(idx)
	}

	return nil
}
