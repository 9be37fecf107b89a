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

const nytBaseURL = "https://api.nytimes.com/svc/news/v3/content"

// NYTResult is a raw newswire record as the NYT API returns it.
type NYTResult struct {
	Section       string   `json:"section"`
	Title         string   `json:"title"`
	Abstract      string   `json:"abstract"`
	URL           string   `json:"url"`
	Byline        string   `json:"byline"`
	PublishedDate string   `json:"published_date"`
	DesFacet      []string `json:"des_facet"`
}

type nytResponse struct {
	Status  string      `json:"status"`
	Results []NYTResult `json:"results"`
	Fault   struct {
		Faultstring string `json:"faultstring"`
	} `json:"fault"`
}

// NYTimesClient wraps the NYT newswire endpoint. The newswire API has a tight
// quota, so the default inter-request interval is a full second.
type NYTimesClient struct {
	// BaseURL is overridable for tests.
	BaseURL string

	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
	timeout  time.Duration
	retryCfg retry.Config
}

// NewNYTimesClient creates an NYT newswire client.
func NewNYTimesClient(cfg Config, client *http.Client) *NYTimesClient {
	cfg = cfg.withDefaults(1 * time.Second)
	return &NYTimesClient{
		BaseURL:  nytBaseURL,
		apiKey:   cfg.APIKey,
		client:   client,
		limiter:  newLimiter(cfg.MinInterval),
		timeout:  cfg.Timeout,
		retryCfg: retry.ProviderAPIConfig(),
	}
}

// Newswire fetches raw records for one section.
// It never returns an error: any failure is logged and yields an empty slice.
func (c *NYTimesClient) Newswire(ctx context.Context, section string, limit int) []NYTResult {
	if c.apiKey == "" {
		slog.Warn("NYT API key not configured, skipping fetch")
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		slog.Error("NYT rate limit wait cancelled", slog.Any("error", err))
		return nil
	}

	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("limit", strconv.Itoa(limit))
	endpoint := fmt.Sprintf("%s/all/%s.json?%s", c.BaseURL, url.PathEscape(section), params.Encode())

	var payload nytResponse
	err := retry.WithBackoff(ctx, c.retryCfg, func() error {
		payload = nytResponse{}
		return getJSON(ctx, c.client, c.timeout, endpoint, &payload)
	})
	if err != nil {
		slog.Error("error fetching from NYT",
			slog.String("section", section),
			slog.Any("error", err))
		return nil
	}

	if payload.Status != "OK" {
		slog.Error("NYT API error response",
			slog.String("fault", payload.Fault.Faultstring))
		return nil
	}

	return payload.Results
}
