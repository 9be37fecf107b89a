// Package ingest orchestrates the news ingestion pipeline: fetching from
// upstream providers, backfilling thin content via scraping, and persisting
// each cycle's batch transactionally.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"newshub/internal/config"
	"newshub/internal/domain/entity"
	"newshub/internal/infra/provider"
	"newshub/internal/observability/metrics"
)

// Source is one upstream news provider as seen by the aggregator. Fetch
// returns whatever the provider yielded this cycle; a degraded provider
// returns an empty slice rather than an error, so one outage never hides
// the other providers' articles.
type Source interface {
	Name() string
	Fetch(ctx context.Context) []*entity.Article
}

// ContentScraper extracts article body text from a page URL.
type ContentScraper interface {
	Scrape(ctx context.Context, url string) (string, error)
	IsScrapable(url string) bool
}

// Aggregator fans a fetch out across all configured sources and backfills
// thin articles with scraped content.
type Aggregator struct {
	sources []Source
	scraper ContentScraper
}

// NewAggregator creates an aggregator over the given sources. The scraper may
// be nil to disable content backfill.
func NewAggregator(sources []Source, contentScraper ContentScraper) *Aggregator {
	return &Aggregator{
		sources: sources,
		scraper: contentScraper,
	}
}

// FetchAll pulls every source concurrently and returns the combined batch in
// stable source order (sources in registration order, each source's articles
// in the order the provider returned them). A source that yields nothing
// contributes nothing; FetchAll itself only fails when the context is done.
func (a *Aggregator) FetchAll(ctx context.Context) []*entity.Article {
	results := make([][]*entity.Article, len(a.sources))

	var eg errgroup.Group
	for i, src := range a.sources {
		eg.Go(func() error {
			arts := src.Fetch(ctx)
			metrics.RecordArticlesFetched(src.Name(), len(arts))
			slog.Info("source fetch completed",
				slog.String("provider", src.Name()),
				slog.Int("articles", len(arts)))
			results[i] = arts
			return nil
		})
	}
	_ = eg.Wait()

	var combined []*entity.Article
	for _, arts := range results {
		combined = append(combined, arts...)
	}
	return combined
}

// BackfillContent scrapes full body text for articles whose provider payload
// carried too little content. Articles are processed sequentially; pacing
// between page fetches is the scraper's job. Mutates the slice elements in
// place and returns the number of articles whose content was filled.
func (a *Aggregator) BackfillContent(ctx context.Context, articles []*entity.Article) int {
	if a.scraper == nil {
		return 0
	}

	filled := 0
	for _, art := range articles {
		if art.HasSubstantialContent() {
			continue
		}
		if !a.scraper.IsScrapable(art.URL) {
			metrics.RecordScrapeAttempt("blocked", 0)
			continue
		}
		if ctx.Err() != nil {
			return filled
		}

		start := time.Now()
		text, err := a.scraper.Scrape(ctx, art.URL)
		if err != nil {
			metrics.RecordScrapeAttempt("failure", time.Since(start))
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return filled
			}
			slog.Warn("content backfill failed, keeping provider content",
				slog.String("external_id", art.ExternalID),
				slog.String("url", art.URL),
				slog.Any("error", err))
			continue
		}
		metrics.RecordScrapeAttempt("success", time.Since(start))

		art.Content = text
		now := time.Now()
		art.ScrapedAt = &now
		filled++
	}
	return filled
}

// BuildSources assembles the source list from the available provider clients
// and the configured selector lists. A client left nil (no API key configured)
// is skipped.
func BuildSources(
	newsAPI *provider.NewsAPIClient,
	guardian *provider.GuardianClient,
	nyt *provider.NYTimesClient,
	selectors config.ProviderSelectors,
) []Source {
	var sources []Source
	if newsAPI != nil {
		sources = append(sources, &newsAPISource{client: newsAPI, selectors: selectors})
	}
	if guardian != nil {
		sources = append(sources, &guardianSource{client: guardian, selectors: selectors})
	}
	if nyt != nil {
		sources = append(sources, &nytSource{client: nyt, selectors: selectors})
	}
	return sources
}

type newsAPISource struct {
	client    *provider.NewsAPIClient
	selectors config.ProviderSelectors
}

func (s *newsAPISource) Name() string { return "newsapi" }

func (s *newsAPISource) Fetch(ctx context.Context) []*entity.Article {
	var articles []*entity.Article
	for _, category := range s.selectors.NewsAPI.Categories {
		raws := s.client.TopHeadlines(ctx, s.selectors.NewsAPI.Country, category, s.selectors.NewsAPI.PageSize)
		for _, raw := range raws {
			if art := NormalizeNewsAPI(raw, category); art != nil {
				articles = append(articles, art)
			}
		}
	}
	return articles
}

type guardianSource struct {
	client    *provider.GuardianClient
	selectors config.ProviderSelectors
}

func (s *guardianSource) Name() string { return "guardian" }

func (s *guardianSource) Fetch(ctx context.Context) []*entity.Article {
	var articles []*entity.Article
	for _, section := range s.selectors.Guardian.Sections {
		raws := s.client.Search(ctx, section, s.selectors.Guardian.PageSize)
		for _, raw := range raws {
			if art := NormalizeGuardian(raw); art != nil {
				articles = append(articles, art)
			}
		}
	}
	return articles
}

type nytSource struct {
	client    *provider.NYTimesClient
	selectors config.ProviderSelectors
}

func (s *nytSource) Name() string { return "nytimes" }

func (s *nytSource) Fetch(ctx context.Context) []*entity.Article {
	var articles []*entity.Article
	for _, section := range s.selectors.NYT.Sections {
		raws := s.client.Newswire(ctx, section, s.selectors.NYT.Limit)
		for _, raw := range raws {
			if art := NormalizeNYT(raw); art != nil {
				articles = append(articles, art)
			}
		}
	}
	return articles
}
