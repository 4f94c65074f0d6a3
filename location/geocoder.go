package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"menufind/models"
)

var (
	// ErrNoCredential means no geocoding API key is configured.
	ErrNoCredential = errors.New("geocoding credential not configured")
	// ErrGeocodeFailed covers non-OK statuses and empty result sets.
	ErrGeocodeFailed = errors.New("geocoding failed")
)

const defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Geocoder resolves an address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*models.GeocodeResult, error)
}

// GoogleGeocoder calls the Google Maps geocoding API biased to one country and
// language.
type GoogleGeocoder struct {
	apiKey   string
	country  string
	language string
	baseURL  string
	client   *http.Client
}

// GoogleOption configures a GoogleGeocoder.
type GoogleOption func(*GoogleGeocoder)

// WithBias sets the country code and response language.
func WithBias(country, language string) GoogleOption {
	return func(g *GoogleGeocoder) {
		if country != "" {
			g.country = country
		}
		if language != "" {
			g.language = language
		}
	}
}

// WithBaseURL points the geocoder at another endpoint.
func WithBaseURL(u string) GoogleOption {
	return func(g *GoogleGeocoder) {
		if u != "" {
			g.baseURL = u
		}
	}
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) GoogleOption {
	return func(g *GoogleGeocoder) {
		if c != nil {
			g.client = c
		}
	}
}

// NewGoogleGeocoder creates a geocoder. Defaults to Croatia and Croatian.
func NewGoogleGeocoder(apiKey string, opts ...GoogleOption) *GoogleGeocoder {
	g := &GoogleGeocoder{
		apiKey:   apiKey,
		country:  "hr",
		language: "hr",
		baseURL:  defaultGeocodeURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		FormattedAddress  string `json:"formatted_address"`
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
	Status string `json:"status"`
}

// Geocode resolves address. Anything but an "OK" status with at least one
// result is an error.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	if g.apiKey == "" {
		return nil, ErrNoCredential
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", g.apiKey)
	q.Set("region", g.country)
	q.Set("language", g.language)
	q.Set("components", "country:"+strings.ToUpper(g.country))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	if result.Status != "OK" {
		return nil, fmt.Errorf("%w: API status %s", ErrGeocodeFailed, result.Status)
	}
	if len(result.Results) == 0 {
		return nil, fmt.Errorf("%w: no results found", ErrGeocodeFailed)
	}

	first := result.Results[0]
	out := &models.GeocodeResult{
		Latitude:         first.Geometry.Location.Lat,
		Longitude:        first.Geometry.Location.Lng,
		FormattedAddress: first.FormattedAddress,
		Source:           models.GeocodeAPI,
	}
	for _, c := range first.AddressComponents {
		if containsType(c.Types, "locality") {
			out.CanonicalCity = strings.ToLower(c.LongName)
			break
		}
	}
	return out, nil
}

func containsType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
