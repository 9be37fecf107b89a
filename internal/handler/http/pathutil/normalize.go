package pathutil

import (
	"regexp"
	"strings"
)

// pathPatterns maps dynamic routes to templates, most specific first.
// Pre-compiled at initialization.
var pathPatterns = []struct {
	pattern  *regexp.Regexp
	template string
}{
	{regexp.MustCompile(`^/api/articles/\d+/scrape$`), "/api/articles/:id/scrape"},
	{regexp.MustCompile(`^/api/articles/\d+$`), "/api/articles/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label
// cardinality explosion: paths with IDs (e.g. /api/articles/123) collapse to
// the template form (/api/articles/:id). Static paths pass through unchanged.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
