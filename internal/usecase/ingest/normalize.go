package ingest

import (
	"log/slog"
	"strings"
	"time"

	"newshub/internal/domain/entity"
	"newshub/internal/infra/provider"
)

// Normalizers convert raw provider payloads into the canonical Article shape.
// A payload that cannot be normalized (missing required fields, unparseable
// timestamp) is logged and dropped; one bad item never fails a batch.

// urlSlug returns the last path segment of a URL, used to derive stable
// external identifiers for providers that do not expose a native ID.
func urlSlug(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return trimmed
}

func parsePublishedAt(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dropInvalid(providerName string, art *entity.Article, err error) *entity.Article {
	if err != nil {
		slog.Warn("dropping article that failed validation",
			slog.String("provider", providerName),
			slog.String("external_id", art.ExternalID),
			slog.String("url", art.URL),
			slog.Any("error", err))
		return nil
	}
	return art
}

// NormalizeNewsAPI converts a NewsAPI headline into a canonical article.
// Returns nil when the payload cannot produce a valid article.
func NormalizeNewsAPI(raw provider.NewsAPIArticle, category string) *entity.Article {
	published, ok := parsePublishedAt(raw.PublishedAt)
	if !ok {
		slog.Warn("dropping article with unparseable publication date",
			slog.String("provider", "newsapi"),
			slog.String("url", raw.URL),
			slog.String("published_at", raw.PublishedAt))
		return nil
	}
	if category == "" {
		category = "general"
	}

	art := &entity.Article{
		ExternalID:  "newsapi_" + urlSlug(raw.URL),
		Title:       raw.Title,
		Description: raw.Description,
		Content:     raw.Content,
		URL:         raw.URL,
		ImageURL:    raw.URLToImage,
		SourceName:  raw.Source.Name,
		SourceID:    raw.Source.ID,
		Author:      raw.Author,
		Category:    category,
		Tags:        []string{},
		PublishedAt: published,
		Language:    "en",
		Country:     "us",
		IsActive:    true,
	}
	return dropInvalid("newsapi", art, entity.ValidateArticle(art))
}

// NormalizeGuardian converts a Guardian content item into a canonical article.
// The Guardian exposes a native content ID, which becomes the external ID.
// Returns nil when the payload cannot produce a valid article.
func NormalizeGuardian(raw provider.GuardianResult) *entity.Article {
	published, ok := parsePublishedAt(raw.WebPublicationDate)
	if !ok {
		slog.Warn("dropping article with unparseable publication date",
			slog.String("provider", "guardian"),
			slog.String("url", raw.WebURL),
			slog.String("published_at", raw.WebPublicationDate))
		return nil
	}

	tags := make([]string, 0, len(raw.Tags))
	for _, tag := range raw.Tags {
		if tag.WebTitle != "" {
			tags = append(tags, tag.WebTitle)
		}
	}

	title := raw.Fields.Headline
	if title == "" {
		title = raw.WebTitle
	}

	art := &entity.Article{
		ExternalID:  "guardian_" + raw.ID,
		Title:       title,
		Description: raw.Fields.TrailText,
		Content:     raw.Fields.BodyText,
		URL:         raw.WebURL,
		ImageURL:    raw.Fields.Thumbnail,
		SourceName:  "The Guardian",
		SourceID:    "guardian",
		Author:      raw.Fields.Byline,
		Category:    strings.ToLower(raw.SectionName),
		Tags:        tags,
		PublishedAt: published,
		Language:    "en",
		Country:     "gb",
		IsActive:    true,
	}
	return dropInvalid("guardian", art, entity.ValidateArticle(art))
}

// NormalizeNYT converts a New York Times newswire item into a canonical
// article. The newswire feed carries no body text; content is left empty for
// the scraper to fill in. Returns nil when the payload cannot produce a valid
// article.
func NormalizeNYT(raw provider.NYTResult) *entity.Article {
	published, ok := parsePublishedAt(raw.PublishedDate)
	if !ok {
		slog.Warn("dropping article with unparseable publication date",
			slog.String("provider", "nytimes"),
			slog.String("url", raw.URL),
			slog.String("published_at", raw.PublishedDate))
		return nil
	}

	tags := raw.DesFacet
	if tags == nil {
		tags = []string{}
	}

	art := &entity.Article{
		ExternalID:  "nyt_" + urlSlug(raw.URL),
		Title:       raw.Title,
		Description: raw.Abstract,
		Content:     "",
		URL:         raw.URL,
		SourceName:  "The New York Times",
		SourceID:    "nytimes",
		Author:      strings.TrimPrefix(raw.Byline, "By "),
		Category:    strings.ToLower(raw.Section),
		Tags:        tags,
		PublishedAt: published,
		Language:    "en",
		Country:     "us",
		IsActive:    true,
	}
	return dropInvalid("nytimes", art, entity.ValidateArticle(art))
}
