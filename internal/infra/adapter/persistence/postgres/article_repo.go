// Package postgres implements the repository interfaces against PostgreSQL
// using database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"newshub/internal/domain/entity"
	"newshub/internal/observability/metrics"
	"newshub/internal/repository"
)

// articleColumns is the column list shared by every article SELECT.
const articleColumns = `id, external_id, title, description, content, url, image_url,
source_name, source_id, author, category, tags, published_at, scraped_at,
language, country, is_active`

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

// timeQuery starts a duration measurement for one named query;
// the returned func records it. Use as `defer timeQuery("op")()`.
func timeQuery(operation string) func() {
	start := time.Now()
	return func() {
		metrics.RecordDBQuery(operation, time.Since(start))
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(s rowScanner) (*entity.Article, error) {
	var a entity.Article
	var description, content, imageURL, sourceID, author, category, language, country sql.NullString
	err := s.Scan(&a.ID, &a.ExternalID, &a.Title, &description, &content, &a.URL, &imageURL,
		&a.SourceName, &sourceID, &author, &category, pq.Array(&a.Tags),
		&a.PublishedAt, &a.ScrapedAt, &language, &country, &a.IsActive)
	if err != nil {
		return nil, err
	}
	a.Description = description.String
	a.Content = content.String
	a.ImageURL = imageURL.String
	a.SourceID = sourceID.String
	a.Author = author.String
	a.Category = category.String
	a.Language = language.String
	a.Country = country.String
	return &a, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	defer timeQuery("get_article")()

	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1 LIMIT 1`, articleColumns)
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

// buildFilterClause translates ArticleFilters into a WHERE fragment.
// The is_active gate always applies; readers never see deactivated rows.
func buildFilterClause(filters repository.ArticleFilters) (string, []any) {
	conditions := []string{"is_active = TRUE"}
	args := []any{}

	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if len(filters.Sources) > 0 {
		add("source_name = ANY($%d)", pq.Array(filters.Sources))
	}
	if len(filters.Categories) > 0 {
		add("category = ANY($%d)", pq.Array(filters.Categories))
	}
	if len(filters.Authors) > 0 {
		add("author = ANY($%d)", pq.Array(filters.Authors))
	}
	if filters.Language != "" {
		add("language = $%d", filters.Language)
	}
	if filters.Country != "" {
		add("country = $%d", filters.Country)
	}
	if filters.From != nil {
		add("published_at >= $%d", *filters.From)
	}
	if filters.To != nil {
		add("published_at <= $%d", *filters.To)
	}

	return strings.Join(conditions, " AND "), args
}

func (repo *ArticleRepo) List(ctx context.Context, filters repository.ArticleFilters, offset, limit int) ([]*entity.Article, error) {
	defer timeQuery("list_articles")()

	where, args := buildFilterClause(filters)
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE %s ORDER BY published_at DESC LIMIT $%d OFFSET $%d`,
		articleColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) Count(ctx context.Context, filters repository.ArticleFilters) (int64, error) {
	defer timeQuery("count_articles")()

	where, args := buildFilterClause(filters)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM articles WHERE %s`, where)

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Search(ctx context.Context, keywords []string, offset, limit int) ([]*entity.Article, error) {
	if len(keywords) == 0 {
		return []*entity.Article{}, nil
	}
	defer timeQuery("search_articles")()

	conditions := []string{"is_active = TRUE"}
	args := []any{}
	for _, kw := range keywords {
		args = append(args, "%"+kw+"%")
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR content ILIKE $%d)", n, n, n))
	}

	query := fmt.Sprintf(`SELECT %s FROM articles WHERE %s ORDER BY published_at DESC LIMIT $%d OFFSET $%d`,
		articleColumns, strings.Join(conditions, " AND "), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("Search: Scan: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) FilterOptions(ctx context.Context) (*repository.FilterOptions, error) {
	defer timeQuery("filter_options")()

	opts := &repository.FilterOptions{}

	queries := []struct {
		query string
		dest  *[]string
	}{
		{`SELECT DISTINCT source_name FROM articles WHERE is_active = TRUE AND source_name <> '' ORDER BY source_name`, &opts.Sources},
		{`SELECT DISTINCT category FROM articles WHERE is_active = TRUE AND category IS NOT NULL AND category <> '' ORDER BY category`, &opts.Categories},
		{`SELECT DISTINCT author FROM articles WHERE is_active = TRUE AND author IS NOT NULL AND author <> '' ORDER BY author`, &opts.Authors},
	}

	for _, q := range queries {
		rows, err := repo.db.QueryContext(ctx, q.query)
		if err != nil {
			return nil, fmt.Errorf("FilterOptions: %w", err)
		}
		for rows.Next() {
			var value string
			if err := rows.Scan(&value); err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("FilterOptions: Scan: %w", err)
			}
			*q.dest = append(*q.dest, value)
		}
		err = rows.Err()
		_ = rows.Close()
		if err != nil {
			return nil, fmt.Errorf("FilterOptions: %w", err)
		}
	}

	return opts, nil
}

func (repo *ArticleRepo) UpdateContent(ctx context.Context, id int64, content string) error {
	defer timeQuery("update_content")()

	const query = `UPDATE articles SET content = $1, scraped_at = $2 WHERE id = $3`
	result, err := repo.db.ExecContext(ctx, query, content, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("UpdateContent: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateContent: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Begin opens the transaction-scoped batch session used by one ingestion cycle.
func (repo *ArticleRepo) Begin(ctx context.Context) (repository.ArticleBatch, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Begin: %w", err)
	}
	return &articleBatch{tx: tx}, nil
}

type articleBatch struct {
	tx *sql.Tx
}

func (b *articleBatch) FindByExternalID(ctx context.Context, externalID string) (*entity.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE external_id = $1 LIMIT 1`, articleColumns)
	article, err := scanArticle(b.tx.QueryRowContext(ctx, query, externalID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByExternalID: %w", err)
	}
	return article, nil
}

func (b *articleBatch) Insert(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (external_id, title, description, content, url, image_url,
    source_name, source_id, author, category, tags, published_at, scraped_at,
    language, country, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING id`
	err := b.tx.QueryRowContext(ctx, query,
		article.ExternalID, article.Title, article.Description, article.Content,
		article.URL, article.ImageURL, article.SourceName, article.SourceID,
		article.Author, article.Category, pq.Array(article.Tags),
		article.PublishedAt, article.ScrapedAt, article.Language, article.Country,
		true).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("Insert: %w", err)
	}
	return nil
}

func (b *articleBatch) Update(ctx context.Context, existing *entity.Article, incoming *entity.Article) error {
	const query = `
UPDATE articles SET title = $1, description = $2, content = $3, url = $4,
    image_url = $5, source_name = $6, source_id = $7, author = $8,
    category = $9, tags = $10, published_at = $11, scraped_at = $12,
    language = $13, country = $14
WHERE id = $15`
	_, err := b.tx.ExecContext(ctx, query,
		incoming.Title, incoming.Description, incoming.Content, incoming.URL,
		incoming.ImageURL, incoming.SourceName, incoming.SourceID, incoming.Author,
		incoming.Category, pq.Array(incoming.Tags), incoming.PublishedAt,
		incoming.ScrapedAt, incoming.Language, incoming.Country, existing.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (b *articleBatch) Commit() error {
	if err := b.tx.Commit(); err != nil {
		return fmt.Errorf("Commit: %w", err)
	}
	return nil
}

func (b *articleBatch) Rollback() error {
	err := b.tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("Rollback: %w", err)
	}
	return nil
}
