// Package article provides HTTP handlers for article endpoints: listing,
// search, filter options, detail retrieval, and on-demand content scraping.
package article

import (
	"time"

	"newshub/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID          int64      `json:"id"`
	ExternalID  string     `json:"external_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Content     string     `json:"content,omitempty"`
	URL         string     `json:"url"`
	ImageURL    string     `json:"image_url,omitempty"`
	SourceName  string     `json:"source_name"`
	SourceID    string     `json:"source_id,omitempty"`
	Author      string     `json:"author,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags"`
	PublishedAt time.Time  `json:"published_at"`
	ScrapedAt   *time.Time `json:"scraped_at,omitempty"`
	Language    string     `json:"language,omitempty"`
	Country     string     `json:"country,omitempty"`
}

// ListResponse is the envelope for paginated article listings.
type ListResponse struct {
	Articles []DTO `json:"articles"`
	Total    int64 `json:"total"`
	Skip     int   `json:"skip"`
	Limit    int   `json:"limit"`
}

func toDTO(a *entity.Article) DTO {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return DTO{
		ID:          a.ID,
		ExternalID:  a.ExternalID,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		SourceName:  a.SourceName,
		SourceID:    a.SourceID,
		Author:      a.Author,
		Category:    a.Category,
		Tags:        tags,
		PublishedAt: a.PublishedAt,
		ScrapedAt:   a.ScrapedAt,
		Language:    a.Language,
		Country:     a.Country,
	}
}

func toDTOs(articles []*entity.Article) []DTO {
	dtos := make([]DTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toDTO(a))
	}
	return dtos
}
