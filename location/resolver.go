// Package location reads the geographic intent of a query: a named city, a
// "near me" request or nothing, plus an explicit search radius. City
// coordinates come from a geocoder behind a TTL cache, with a built-in table
// as fallback.
package location

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"menufind/cache"
	"menufind/models"
)

const (
	// DefaultCacheTTL is how long geocoded cities are kept.
	DefaultCacheTTL = 30 * time.Minute
	// DefaultCityRadiusKm applies to city searches without an explicit radius.
	DefaultCityRadiusKm = 10
)

// Resolver turns queries into location contexts and search areas.
type Resolver struct {
	geocoder Geocoder
	store    cache.Store[models.GeocodeResult]
	logger   zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithGeocoder sets the geocoding service. Without one only the fallback
// table is used.
func WithGeocoder(g Geocoder) Option {
	return func(r *Resolver) {
		r.geocoder = g
	}
}

// WithStore replaces the in-memory geocode cache.
func WithStore(store cache.Store[models.GeocodeResult]) Option {
	return func(r *Resolver) {
		r.store = store
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver with an in-memory cache of DefaultCacheTTL
// unless WithStore is given.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = cache.NewMemory[models.GeocodeResult](DefaultCacheTTL)
	}
	return r
}

// CityCoordinates resolves a city name. The cache is consulted first, then
// the geocoder, then the fallback table. Geocoder failures are never returned;
// ok is false only when no source knows the city.
func (r *Resolver) CityCoordinates(ctx context.Context, city string) (*models.GeocodeResult, bool) {
	key := NormalizeCityName(city)
	if key == "" {
		return nil, false
	}
	cacheKey := cache.Key("geocode", key)

	if hit, err := r.store.Get(ctx, cacheKey); err == nil {
		return &hit, true
	} else if !errors.Is(err, cache.ErrMiss) {
		r.logger.Warn().Err(err).Str("city", key).Msg("geocode cache read failed")
	}

	if r.geocoder != nil {
		res, err := r.geocoder.Geocode(ctx, key)
		if err == nil {
			if res.CanonicalCity == "" {
				res.CanonicalCity = key
			}
			r.remember(ctx, cacheKey, *res)
			return res, true
		}
		r.logger.Warn().Err(err).Str("city", key).Msg("geocoding failed, using fallback table")
	}

	fb, ok := fallbackFor(key)
	if !ok {
		r.logger.Debug().Str("city", key).Msg("city not resolvable")
		return nil, false
	}
	r.logger.Debug().Str("city", key).Msg("using fallback coordinates")
	r.remember(ctx, cacheKey, fb)
	return &fb, true
}

func (r *Resolver) remember(ctx context.Context, key string, res models.GeocodeResult) {
	if err := r.store.Set(ctx, key, res); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("geocode cache write failed")
	}
}

// AnalyzeContext classifies query. A near-me request is checked before any
// city mention; an explicit city beats the device location.
func (r *Resolver) AnalyzeContext(ctx context.Context, query string, userLocation *models.LatLng) models.LocationContext {
	if IsNearMe(query) {
		if userLocation != nil {
			loc := *userLocation
			return models.LocationContext{Type: models.UserLocation, Coordinates: &loc, Source: models.SourceUser}
		}
		return models.LocationContext{Type: models.NoLocation, Source: models.SourceNone}
	}

	if city, ok := ExtractCity(query); ok {
		lc := models.LocationContext{Type: models.CitySpecific, City: city, Source: models.SourceQuery}
		if res, ok := r.CityCoordinates(ctx, city); ok {
			coords := res.Coordinates()
			lc.Coordinates = &coords
		}
		return lc
	}

	if userLocation != nil {
		loc := *userLocation
		return models.LocationContext{Type: models.UserLocation, Coordinates: &loc, Source: models.SourceDefault}
	}
	return models.LocationContext{Type: models.NoLocation, Source: models.SourceNone}
}

// SearchArea combines AnalyzeContext and ExtractRadiusKm. The radius is the
// explicit one from the text, else DefaultCityRadiusKm for city searches,
// else unset. Without coordinates the zero SearchArea is returned.
func (r *Resolver) SearchArea(ctx context.Context, query string, userLocation *models.LatLng) models.SearchArea {
	lc := r.AnalyzeContext(ctx, query, userLocation)
	return AreaFor(lc, query)
}

// AreaFor derives the search area from an already analyzed context.
func AreaFor(lc models.LocationContext, query string) models.SearchArea {
	if lc.Coordinates == nil {
		return models.SearchArea{}
	}

	area := models.SearchArea{Center: lc.Coordinates, Type: lc.Type, City: lc.City}
	if km, ok := ExtractRadiusKm(query); ok {
		area.RadiusKm = &km
	} else if lc.Type == models.CitySpecific {
		km := DefaultCityRadiusKm
		area.RadiusKm = &km
	}
	return area
}

// Clear drops every cached geocode result.
func (r *Resolver) Clear(ctx context.Context) error {
	return r.store.Clear(ctx)
}
