package article

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"newshub/internal/repository"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// parsePagination reads skip and limit query parameters with bounds checking.
func parsePagination(r *http.Request) (skip, limit int, err error) {
	skip, limit = 0, defaultLimit

	if raw := r.URL.Query().Get("skip"); raw != "" {
		skip, err = strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return 0, 0, fmt.Errorf("invalid skip parameter: %q", raw)
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			return 0, 0, fmt.Errorf("invalid limit parameter: %q (must be 1..%d)", raw, maxLimit)
		}
	}
	return skip, limit, nil
}

// parseFilters reads the optional list filters. Multi-value filters accept
// comma-separated lists; date bounds accept RFC 3339 or plain dates.
func parseFilters(r *http.Request) (repository.ArticleFilters, error) {
	q := r.URL.Query()
	filters := repository.ArticleFilters{
		Sources:    splitCSV(q.Get("sources")),
		Categories: splitCSV(q.Get("categories")),
		Authors:    splitCSV(q.Get("authors")),
		Language:   q.Get("language"),
		Country:    q.Get("country"),
	}

	if raw := q.Get("from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			return filters, fmt.Errorf("invalid from parameter: %q", raw)
		}
		filters.From = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			return filters, fmt.Errorf("invalid to parameter: %q", raw)
		}
		filters.To = &to
	}
	return filters, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}
