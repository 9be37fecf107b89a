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

const guardianBaseURL = "https://content.guardianapis.com"

// GuardianResult is a raw content-search record as the Guardian API returns it.
type GuardianResult struct {
	ID                 string `json:"id"`
	SectionName        string `json:"sectionName"`
	WebPublicationDate string `json:"webPublicationDate"`
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	Fields             struct {
		Headline  string `json:"headline"`
		TrailText string `json:"trailText"`
		BodyText  string `json:"bodyText"`
		Thumbnail string `json:"thumbnail"`
		Byline    string `json:"byline"`
	} `json:"fields"`
	Tags []struct {
		WebTitle string `json:"webTitle"`
	} `json:"tags"`
}

type guardianResponse struct {
	Response struct {
		Status  string           `json:"status"`
		Message string           `json:"message"`
		Results []GuardianResult `json:"results"`
	} `json:"response"`
}

// GuardianClient wraps the Guardian content search endpoint.
type GuardianClient struct {
	// BaseURL is overridable for tests.
	BaseURL string

	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
	timeout  time.Duration
	retryCfg retry.Config
}

// NewGuardianClient creates a Guardian API client.
func NewGuardianClient(cfg Config, client *http.Client) *GuardianClient {
	cfg = cfg.withDefaults(500 * time.Millisecond)
	return &GuardianClient{
		BaseURL:  guardianBaseURL,
		apiKey:   cfg.APIKey,
		client:   client,
		limiter:  newLimiter(cfg.MinInterval),
		timeout:  cfg.Timeout,
		retryCfg: retry.ProviderAPIConfig(),
	}
}

// Search fetches raw article records for one section.
// It never returns an error: any failure is logged and yields an empty slice.
func (c *GuardianClient) Search(ctx context.Context, section string, pageSize int) []GuardianResult {
	if c.apiKey == "" {
		slog.Warn("Guardian API key not configured, skipping fetch")
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		slog.Error("Guardian rate limit wait cancelled", slog.Any("error", err))
		return nil
	}

	params := url.Values{}
	params.Set("section", section)
	params.Set("page-size", strconv.Itoa(pageSize))
	params.Set("api-key", c.apiKey)
	params.Set("show-fields", "headline,trailText,bodyText,thumbnail,byline,firstPublicationDate")
	params.Set("show-tags", "keyword")
	endpoint := fmt.Sprintf("%s/search?%s", c.BaseURL, params.Encode())

	var payload guardianResponse
	err := retry.WithBackoff(ctx, c.retryCfg, func() error {
		payload = guardianResponse{}
		return getJSON(ctx, c.client, c.timeout, endpoint, &payload)
	})
	if err != nil {
		slog.Error("error fetching from Guardian",
			slog.String("section", section),
			slog.Any("error", err))
		return nil
	}

	if payload.Response.Status != "ok" {
		slog.Error("Guardian API error response",
			slog.String("message", payload.Response.Message))
		return nil
	}

	return payload.Response.Results
}
