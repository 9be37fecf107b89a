package article

import (
	"errors"
	"net/http"
	"strings"

	"newshub/internal/handler/http/respond"
	"newshub/internal/usecase/article"
)

// SearchHandler serves GET /api/articles/search?q=keyword.
func SearchHandler(svc *article.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			respond.Error(w, http.StatusBadRequest, errors.New("query parameter q is required"))
			return
		}

		skip, limit, err := parsePagination(r)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, err)
			return
		}

		articles, err := svc.Search(r.Context(), query, skip, limit)
		if err != nil {
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		respond.JSON(w, http.StatusOK, map[string]any{
			"articles": toDTOs(articles),
			"query":    query,
			"skip":     skip,
			"limit":    limit,
		})
	}
}
