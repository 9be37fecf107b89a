package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"newshub/internal/domain/entity"
	pg "newshub/internal/infra/adapter/persistence/postgres"
	"newshub/internal/repository"
)

var articleCols = []string{
	"id", "external_id", "title", "description", "content", "url", "image_url",
	"source_name", "source_id", "author", "category", "tags", "published_at",
	"scraped_at", "language", "country", "is_active",
}

func artRow(a *entity.Article) *sqlmock.Rows {
	return sqlmock.NewRows(articleCols).AddRow(
		a.ID, a.ExternalID, a.Title, a.Description, a.Content, a.URL, a.ImageURL,
		a.SourceName, a.SourceID, a.Author, a.Category, "{world,politics}",
		a.PublishedAt, a.ScrapedAt, a.Language, a.Country, a.IsActive,
	)
}

func sampleArticle(now time.Time) *entity.Article {
	return &entity.Article{
		ID:          1,
		ExternalID:  "guardian_world/2025/jun/01/example",
		Title:       "Example headline",
		Description: "trail text",
		Content:     "body text",
		URL:         "https://example.com/news/example",
		ImageURL:    "https://example.com/thumb.jpg",
		SourceName:  "The Guardian",
		SourceID:    "guardian",
		Author:      "A. Writer",
		Category:    "World news",
		Tags:        []string{"world", "politics"},
		PublishedAt: now,
		ScrapedAt:   &now,
		Language:    "en",
		Country:     "gb",
		IsActive:    true,
	}
}

func TestArticleRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	want := sampleArticle(now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(1)).
		WillReturnRows(artRow(want))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(articleCols))

	repo := pg.NewArticleRepo(db)
	_, err := repo.Get(context.Background(), 99)
	if err != entity.ErrNotFound {
		t.Fatalf("Get err=%v, want ErrNotFound", err)
	}
}

func TestArticleRepo_List_WithFilters(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("FROM articles").
		WillReturnRows(artRow(sampleArticle(now)))

	repo := pg.NewArticleRepo(db)
	got, err := repo.List(context.Background(), repository.ArticleFilters{
		Sources:  []string{"The Guardian"},
		Language: "en",
	}, 0, 20)
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
}

func TestArticleRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	repo := pg.NewArticleRepo(db)
	count, err := repo.Count(context.Background(), repository.ArticleFilters{})
	if err != nil || count != 42 {
		t.Fatalf("Count err=%v count=%d", err, count)
	}
}

func TestArticleRepo_Search(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM articles").
		WithArgs("%go%", "%release%", 20, 0).
		WillReturnRows(sqlmock.NewRows(articleCols))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Search(context.Background(), []string{"go", "release"}, 0, 20)
	if err != nil {
		t.Fatalf("Search err=%v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Search len=%d, want 0", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Search_NoKeywords(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	repo := pg.NewArticleRepo(db)
	got, err := repo.Search(context.Background(), nil, 0, 20)
	if err != nil || len(got) != 0 {
		t.Fatalf("Search with no keywords err=%v len=%d", err, len(got))
	}
}

func TestArticleRepo_UpdateContent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET content")).
		WithArgs("new body", sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewArticleRepo(db)
	if err := repo.UpdateContent(context.Background(), 3, "new body"); err != nil {
		t.Fatalf("UpdateContent err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_UpdateContent_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET content")).
		WithArgs("body", sqlmock.AnyArg(), int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewArticleRepo(db)
	if err := repo.UpdateContent(context.Background(), 404, "body"); err != entity.ErrNotFound {
		t.Fatalf("UpdateContent err=%v, want ErrNotFound", err)
	}
}

func TestArticleBatch_InsertThenCommit(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	article := sampleArticle(now)
	article.ID = 0

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(article.ExternalID).
		WillReturnRows(sqlmock.NewRows(articleCols))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	repo := pg.NewArticleRepo(db)
	batch, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin err=%v", err)
	}

	existing, err := batch.FindByExternalID(context.Background(), article.ExternalID)
	if err != nil {
		t.Fatalf("FindByExternalID err=%v", err)
	}
	if existing != nil {
		t.Fatalf("FindByExternalID = %+v, want nil", existing)
	}

	if err := batch.Insert(context.Background(), article); err != nil {
		t.Fatalf("Insert err=%v", err)
	}
	if article.ID != 7 {
		t.Fatalf("Insert did not set ID, got %d", article.ID)
	}

	if err := batch.Commit(); err != nil {
		t.Fatalf("Commit err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleBatch_UpdateExisting(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	stored := sampleArticle(now)
	incoming := sampleArticle(now)
	incoming.ID = 0
	incoming.Content = "updated body"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(stored.ExternalID).
		WillReturnRows(artRow(stored))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewArticleRepo(db)
	batch, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin err=%v", err)
	}

	existing, err := batch.FindByExternalID(context.Background(), stored.ExternalID)
	if err != nil || existing == nil {
		t.Fatalf("FindByExternalID err=%v existing=%v", err, existing)
	}

	if err := batch.Update(context.Background(), existing, incoming); err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if err := batch.Commit(); err != nil {
		t.Fatalf("Commit err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleBatch_Rollback(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := pg.NewArticleRepo(db)
	batch, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin err=%v", err)
	}
	if err := batch.Rollback(); err != nil {
		t.Fatalf("Rollback err=%v", err)
	}
}
