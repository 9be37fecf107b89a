// Package pathutil contains helpers for working with URL paths: extracting
// IDs and normalizing dynamic paths for low-cardinality metrics labels.
package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID extracts and parses an integer ID from a URL path. It removes the
// given prefix, drops any trailing sub-path, and parses the remaining segment
// as an int64.
//
// Example:
//
//	id, err := ExtractID("/api/articles/123", "/api/articles/")        // 123
//	id, err := ExtractID("/api/articles/123/scrape", "/api/articles/") // 123
func ExtractID(path, prefix string) (int64, error) {
	idStr := strings.TrimPrefix(path, prefix)
	if idx := strings.IndexByte(idStr, '/'); idx != -1 {
		idStr = idStr[:idx]
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
