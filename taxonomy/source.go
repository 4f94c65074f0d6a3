package taxonomy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"menufind/models"
)

// ErrUpstreamUnavailable is returned when the taxonomy catalog cannot be
// fetched or its payload is malformed. There is no stale-data fallback.
var ErrUpstreamUnavailable = errors.New("taxonomy upstream unavailable")

// Source fetches the full taxonomy catalog.
type Source interface {
	FetchTaxonomies(ctx context.Context) (*models.Taxonomies, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*models.Taxonomies, error)

// FetchTaxonomies calls f.
func (f SourceFunc) FetchTaxonomies(ctx context.Context) (*models.Taxonomies, error) {
	return f(ctx)
}

// HTTPSource reads the catalog from a JSON endpoint answering
// {"success": bool, "result": {...seven arrays...}}.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTPSource. A nil client gets a 10 second timeout.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSource{url: url, client: client}
}

type taxonomyResponse struct {
	Success bool               `json:"success"`
	Result  *models.Taxonomies `json:"result"`
}

// FetchTaxonomies performs one GET against the configured address.
func (s *HTTPSource) FetchTaxonomies(ctx context.Context) (*models.Taxonomies, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload taxonomyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstreamUnavailable, err)
	}
	if !payload.Success || payload.Result == nil {
		return nil, fmt.Errorf("%w: unsuccessful response", ErrUpstreamUnavailable)
	}
	return payload.Result, nil
}
