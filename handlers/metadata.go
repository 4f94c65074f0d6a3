package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"menufind/taxonomy"
)

// TaxonomiesHandler serves the cached taxonomy catalog. An unreachable
// catalog upstream is reported as 502.
func TaxonomiesHandler(catalog *taxonomy.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := catalog.Taxonomies(r.Context())
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("taxonomies unavailable")
			http.Error(w, "Taxonomy service unavailable", http.StatusBadGateway)
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "result": t})
	}
}

// ClearCacheHandler drops every cached taxonomy snapshot and geocode result.
func ClearCacheHandler(clear func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := clear(r.Context()); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("cache clear failed")
			http.Error(w, "Something went wrong", http.StatusInternalServerError)
			return
		}
		zerolog.Ctx(r.Context()).Info().Msg("caches cleared")
		writeJSON(w, r, http.StatusOK, map[string]bool{"cleared": true})
	}
}
