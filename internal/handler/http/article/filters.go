package article

import (
	"net/http"

	"newshub/internal/handler/http/respond"
	"newshub/internal/usecase/article"
)

// FiltersHandler serves GET /api/articles/filters, returning the distinct
// sources, categories and languages present in the store.
func FiltersHandler(svc *article.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := svc.FilterOptions(r.Context())
		if err != nil {
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
		respond.JSON(w, http.StatusOK, opts)
	}
}
