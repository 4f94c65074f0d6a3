package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"menufind/location"
	"menufind/search"
	"menufind/taxonomy"
)

// Deps are the components the HTTP surface needs.
type Deps struct {
	Analyzer    *search.Analyzer
	Resolver    *location.Resolver
	Catalog     *taxonomy.Catalog
	ClearCaches func(context.Context) error
	Logger      zerolog.Logger
}

// NewRouter registers every route and wraps the mux in request logging.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/search/analyze", AnalyzeHandler(d.Analyzer))
	mux.HandleFunc("POST /api/search/rank", RankHandler(d.Analyzer))
	mux.HandleFunc("GET /api/search/location", LocationHandler(d.Resolver))
	mux.HandleFunc("GET /api/taxonomies", TaxonomiesHandler(d.Catalog))
	mux.HandleFunc("POST /api/cache/clear", ClearCacheHandler(d.ClearCaches))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return RequestLogger(d.Logger)(mux)
}
