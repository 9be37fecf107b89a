package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		prefix  string
		want    int64
		wantErr bool
	}{
		{"simple id", "/api/articles/123", "/api/articles/", 123, false},
		{"id with sub-path", "/api/articles/42/scrape", "/api/articles/", 42, false},
		{"zero id", "/api/articles/0", "/api/articles/", 0, true},
		{"negative id", "/api/articles/-1", "/api/articles/", 0, true},
		{"non-numeric", "/api/articles/abc", "/api/articles/", 0, true},
		{"empty id", "/api/articles/", "/api/articles/", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractID(tt.path, tt.prefix)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api/articles/123", "/api/articles/:id"},
		{"/api/articles/123/scrape", "/api/articles/:id/scrape"},
		{"/api/articles/123?full=true", "/api/articles/:id"},
		{"/api/articles/123/", "/api/articles/:id"},
		{"/api/articles", "/api/articles"},
		{"/api/articles/search", "/api/articles/search"},
		{"/api/articles/filters", "/api/articles/filters"},
		{"/healthz", "/healthz"},
		{"/metrics", "/metrics"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePath(tt.in), tt.in)
	}
}
