package article

import (
	"net/http"

	"newshub/internal/handler/http/auth"
	artUC "newshub/internal/usecase/article"
)

// Register registers all article-related HTTP handlers with the given mux.
// Read routes are public; the scrape and ingest triggers require an admin
// token via the auth middleware.
func Register(mux *http.ServeMux, svc *artUC.Service, runCycle RunCycleFunc) {
	mux.Handle("GET    /api/articles", ListHandler(svc))
	mux.Handle("GET    /api/articles/search", SearchHandler(svc))
	mux.Handle("GET    /api/articles/filters", FiltersHandler(svc))
	mux.Handle("GET    /api/articles/", GetHandler(svc))

	mux.Handle("POST   /api/articles/{id}/scrape", auth.RequireAdmin(ScrapeHandler(svc)))
	mux.Handle("POST   /api/ingest/run", auth.RequireAdmin(IngestHandler(runCycle)))
}
