package article

import (
	"net/http"

	"newshub/internal/handler/http/respond"
	"newshub/internal/usecase/article"
)

// ListHandler serves GET /api/articles with optional filters and pagination.
func ListHandler(svc *article.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, limit, err := parsePagination(r)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, err)
			return
		}
		filters, err := parseFilters(r)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, err)
			return
		}

		result, err := svc.List(r.Context(), filters, skip, limit)
		if err != nil {
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		respond.JSON(w, http.StatusOK, ListResponse{
			Articles: toDTOs(result.Articles),
			Total:    result.Total,
			Skip:     skip,
			Limit:    limit,
		})
	}
}
