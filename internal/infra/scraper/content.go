// Package scraper extracts article body text from news pages.
//
// Extraction is heuristic: after stripping non-content elements, a fixed list
// of structural and semantic selectors is tried in priority order, and the
// matching element with the longest rendered text wins. Boilerplate fragments
// are short; the true article body is the longest matching block.
package scraper

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"newshub/internal/resilience/circuitbreaker"
)

// Sentinel errors distinguishing why a scrape produced no content.
var (
	// ErrBlockedURL means the URL was rejected before any network call:
	// blocked host or unsupported scheme.
	ErrBlockedURL = errors.New("url is not scrapable")

	// ErrNoContent means the page was fetched but no substantial article
	// text could be extracted.
	ErrNoContent = errors.New("could not extract content")
)

// contentSelectors is the priority-ordered cascade tried against each page.
var contentSelectors = []string{
	"article",
	"[role=\"main\"]",
	".article-content",
	".post-content",
	".entry-content",
	".content",
	".article-body",
	".post-body",
	".entry-body",
	"main",
	".main-content",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ContentScraper fetches article pages and extracts their body text.
//
// One instance owns one rate-limit clock: the limiter spaces out every scrape
// request issued through this instance, no matter which caller (batch backfill
// or the on-demand endpoint) triggered it. Share a single instance process-wide.
type ContentScraper struct {
	client  *http.Client
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
	config  Config
}

// NewContentScraper creates a scraper with the given configuration.
// When client is nil, a pooled HTTP client with the configured timeout and
// TLS 1.2+ is created.
func NewContentScraper(cfg Config, client *http.Client) *ContentScraper {
	if client == nil {
		client = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		}
	}
	return &ContentScraper{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		breaker: circuitbreaker.New(circuitbreaker.ContentScrapeConfig()),
		config:  cfg,
	}
}

// Scrape fetches the page at rawURL and extracts its article text.
//
// Blocked or non-HTTP URLs are rejected immediately, without a network call
// and without consuming a rate-limit slot. All other callers are suspended
// until the shared minimum inter-request interval has elapsed. Returns
// ErrNoContent when the page yields less than the minimum extractable text.
func (s *ContentScraper) Scrape(ctx context.Context, rawURL string) (string, error) {
	if !s.IsScrapable(rawURL) {
		return "", ErrBlockedURL
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetchDocument(ctx, rawURL)
	})
	if err != nil {
		slog.Error("error scraping content",
			slog.String("url", rawURL),
			slog.Any("error", err))
		return "", fmt.Errorf("%w: %v", ErrNoContent, err)
	}
	doc := result.(*goquery.Document)

	text := extractText(doc)
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if len(text) < s.config.MinContentLength {
		return "", ErrNoContent
	}
	return text, nil
}

// IsScrapable reports whether a URL may be fetched at all: http/https scheme
// and a host that is not on the blocklist.
func (s *ContentScraper) IsScrapable(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	for _, blocked := range s.config.BlockedHosts {
		if strings.Contains(host, blocked) {
			return false
		}
	}
	return true
}

func (s *ContentScraper) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.config.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, s.config.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}

// extractText runs the selector cascade and falls back to the densest
// paragraph's parent when no selector matches.
func extractText(doc *goquery.Document) string {
	doc.Find("script, style, nav, header, footer, aside").Remove()

	for _, selector := range contentSelectors {
		matches := doc.Find(selector)
		if matches.Length() == 0 {
			continue
		}
		return longestText(matches)
	}

	// No container matched: take the paragraph with the most text and widen
	// to its parent to capture sibling paragraphs in the same block.
	paragraphs := doc.Find("p")
	if paragraphs.Length() == 0 {
		return ""
	}
	var best *goquery.Selection
	bestLen := -1
	paragraphs.Each(func(_ int, sel *goquery.Selection) {
		if l := len(sel.Text()); l > bestLen {
			best, bestLen = sel, l
		}
	})
	if parent := best.Parent(); parent.Length() > 0 {
		return parent.Text()
	}
	return best.Text()
}

// longestText returns the text of the matching element with the greatest
// rendered text length.
func longestText(matches *goquery.Selection) string {
	bestText := ""
	matches.Each(func(_ int, sel *goquery.Selection) {
		if text := sel.Text(); len(text) > len(bestText) {
			bestText = text
		}
	})
	return bestText
}
