package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"newshub/internal/resilience/retry"
)

const newsAPIBaseURL = "https://newsapi.org/v2"

// NewsAPIArticle is a raw top-headlines record as NewsAPI returns it.
type NewsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []NewsAPIArticle `json:"articles"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
}

// NewsAPIClient wraps the NewsAPI top-headlines endpoint.
type NewsAPIClient struct {
	// BaseURL is overridable for tests.
	BaseURL string

	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
	timeout  time.Duration
	retryCfg retry.Config
}

// NewNewsAPIClient creates a NewsAPI client. The HTTP client is shared with
// the caller so connection pooling spans all providers.
func NewNewsAPIClient(cfg Config, client *http.Client) *NewsAPIClient {
	cfg = cfg.withDefaults(500 * time.Millisecond)
	return &NewsAPIClient{
		BaseURL:  newsAPIBaseURL,
		apiKey:   cfg.APIKey,
		client:   client,
		limiter:  newLimiter(cfg.MinInterval),
		timeout:  cfg.Timeout,
		retryCfg: retry.ProviderAPIConfig(),
	}
}

// TopHeadlines fetches raw headline records for one country/category slice.
// It never returns an error: any failure is logged and yields an empty slice.
func (c *NewsAPIClient) TopHeadlines(ctx context.Context, country, category string, pageSize int) []NewsAPIArticle {
	if c.apiKey == "" {
		slog.Warn("NewsAPI key not configured, skipping fetch")
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		slog.Error("NewsAPI rate limit wait cancelled", slog.Any("error", err))
		return nil
	}

	params := url.Values{}
	params.Set("country", country)
	params.Set("category", category)
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("apiKey", c.apiKey)
	endpoint := fmt.Sprintf("%s/top-headlines?%s", c.BaseURL, params.Encode())

	var payload newsAPIResponse
	err := retry.WithBackoff(ctx, c.retryCfg, func() error {
		payload = newsAPIResponse{}
		return getJSON(ctx, c.client, c.timeout, endpoint, &payload)
	})
	if err != nil {
		slog.Error("error fetching from NewsAPI",
			slog.String("category", category),
			slog.Any("error", err))
		return nil
	}

	if payload.Status != "ok" {
		slog.Error("NewsAPI error response",
			slog.String("code", payload.Code),
			slog.String("message", payload.Message))
		return nil
	}

	return payload.Articles
}
