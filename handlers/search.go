package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"menufind/location"
	"menufind/models"
	"menufind/search"
)

const maxRankBody = 1 << 20

var errBadLocation = errors.New("lat and lon must both be valid coordinates")

// parseUserLocation reads optional device coordinates. Both lat and lon must be
// present and valid, or both absent.
func parseUserLocation(query url.Values) (*models.LatLng, error) {
	latStr, lonStr := strings.TrimSpace(query.Get("lat")), strings.TrimSpace(query.Get("lon"))
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil {
		return nil, errBadLocation
	}
	return checkLatLng(lat, lon)
}

func checkLatLng(lat, lon float64) (*models.LatLng, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, errBadLocation
	}
	return &models.LatLng{Lat: lat, Lng: lon}, nil
}

// ParseAnalyzeParams extracts the prompt, device location and variant limit
// from the URL query. The prompt is read from q, falling back to prompt.
func ParseAnalyzeParams(query url.Values) (search.Request, error) {
	req := search.Request{Prompt: query.Get("q")}
	if req.Prompt == "" {
		req.Prompt = query.Get("prompt")
	}

	loc, err := parseUserLocation(query)
	if err != nil {
		return req, err
	}
	req.UserLocation = loc

	if v := query.Get("max_variants"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.New("max_variants must be an integer")
		}
		req.MaxVariants = n
	}
	return req, nil
}

// AnalyzeHandler returns the structured intent of a prompt: taxonomy filters,
// free-text terms with variants, and the search area.
func AnalyzeHandler(analyzer *search.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := ParseAnalyzeParams(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, r, http.StatusOK, analyzer.Analyze(r.Context(), req))
	}
}

type rankRequest struct {
	Prompt      string        `json:"prompt"`
	Lat         *float64      `json:"lat"`
	Lon         *float64      `json:"lon"`
	MaxVariants int           `json:"maxVariants"`
	Items       []models.Item `json:"items"`
}

type rankResponse struct {
	Analysis search.Analysis     `json:"analysis"`
	Results  []models.ScoredItem `json:"results"`
}

// RankHandler analyzes the prompt and ranks the posted candidates against it.
func RankHandler(analyzer *search.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body rankRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRankBody)).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		req := search.Request{Prompt: body.Prompt, MaxVariants: body.MaxVariants}
		if body.Lat != nil || body.Lon != nil {
			if body.Lat == nil || body.Lon == nil {
				http.Error(w, errBadLocation.Error(), http.StatusBadRequest)
				return
			}
			loc, err := checkLatLng(*body.Lat, *body.Lon)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			req.UserLocation = loc
		}

		an := analyzer.Analyze(r.Context(), req)
		writeJSON(w, r, http.StatusOK, rankResponse{Analysis: an, Results: analyzer.Rank(an, body.Items)})
	}
}

type locationResponse struct {
	Context models.LocationContext `json:"context"`
	Area    models.SearchArea      `json:"area"`
}

// LocationHandler reports only the geographic part of a query.
func LocationHandler(resolver *location.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		loc, err := parseUserLocation(query)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		q := query.Get("q")
		lc := resolver.AnalyzeContext(r.Context(), q, loc)
		writeJSON(w, r, http.StatusOK, locationResponse{Context: lc, Area: location.AreaFor(lc, q)})
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("encode response")
	}
}
