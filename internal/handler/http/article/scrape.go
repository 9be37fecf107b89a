package article

import (
	"errors"
	"net/http"

	"newshub/internal/handler/http/pathutil"
	"newshub/internal/handler/http/respond"
	"newshub/internal/usecase/article"
)

// ScrapeHandler serves POST /api/articles/{id}/scrape. It fetches the full
// article body on demand and returns the refreshed article.
func ScrapeHandler(svc *article.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathutil.ExtractID(r.URL.Path, "/api/articles/")
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest, article.ErrInvalidArticleID)
			return
		}

		art, err := svc.ScrapeContent(r.Context(), id)
		switch {
		case errors.Is(err, article.ErrInvalidArticleID):
			respond.SafeError(w, http.StatusBadRequest, err)
		case errors.Is(err, article.ErrArticleNotFound):
			respond.SafeError(w, http.StatusNotFound, err)
		case errors.Is(err, article.ErrContentUnavailable):
			respond.SafeError(w, http.StatusUnprocessableEntity, article.ErrContentUnavailable)
		case err != nil:
			respond.SafeError(w, http.StatusInternalServerError, err)
		default:
			respond.JSON(w, http.StatusOK, toDTO(art))
		}
	}
}
