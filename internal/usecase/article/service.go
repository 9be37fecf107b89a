package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newshub/internal/domain/entity"
	"newshub/internal/repository"
)

// Scraper extracts article body text from a page URL.
type Scraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// Service provides the read-side article use cases plus on-demand content
// scraping. It delegates persistence to the repository and page fetching to
// the scraper.
type Service struct {
	Repo    repository.ArticleRepository
	Scraper Scraper
}

// ListResult carries one page of articles together with the total match count
// for pagination.
type ListResult struct {
	Articles []*entity.Article
	Total    int64
}

// List retrieves a page of active articles matching the filters, newest
// first, along with the total count of matches.
func (s *Service) List(ctx context.Context, filters repository.ArticleFilters, skip, limit int) (*ListResult, error) {
	articles, err := s.Repo.List(ctx, filters, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	total, err := s.Repo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	return &ListResult{Articles: articles, Total: total}, nil
}

// Get retrieves a single article by its ID.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return art, nil
}

// Search finds articles matching a free-text query. The query is split on
// whitespace into keywords combined with AND logic; every keyword must match
// the title, description, or content. An empty query matches nothing.
func (s *Service) Search(ctx context.Context, query string, skip, limit int) ([]*entity.Article, error) {
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return []*entity.Article{}, nil
	}

	articles, err := s.Repo.Search(ctx, keywords, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return articles, nil
}

// FilterOptions returns the distinct source names, categories, and authors
// available for building filter controls.
func (s *Service) FilterOptions(ctx context.Context) (*repository.FilterOptions, error) {
	opts, err := s.Repo.FilterOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("filter options: %w", err)
	}
	return opts, nil
}

// ScrapeContent fetches full body text for one stored article on demand.
// An article that already has substantial content is returned as-is without
// a page fetch. A scrape that fails or extracts nothing substantial returns
// ErrContentUnavailable and leaves the stored row untouched.
func (s *Service) ScrapeContent(ctx context.Context, id int64) (*entity.Article, error) {
	art, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if art.HasSubstantialContent() {
		return art, nil
	}

	content, err := s.Scraper.Scrape(ctx, art.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	}

	if err := s.Repo.UpdateContent(ctx, art.ID, content); err != nil {
		return nil, fmt.Errorf("update article content: %w", err)
	}

	art.Content = content
	return art, nil
}
