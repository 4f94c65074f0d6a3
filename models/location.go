package models

// LatLng is a point in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationType classifies the geographic intent of a query.
type LocationType string

const (
	CitySpecific LocationType = "city_specific"
	UserLocation LocationType = "user_location"
	NoLocation   LocationType = "no_location"
)

// LocationSource tells where the coordinates of a LocationContext came from.
type LocationSource string

const (
	SourceQuery   LocationSource = "query"
	SourceUser    LocationSource = "user"
	SourceDefault LocationSource = "default"
	SourceNone    LocationSource = "none"
)

// GeocodeSource marks whether cached coordinates came from the geocoding
// service or the built-in table.
type GeocodeSource string

const (
	GeocodeAPI      GeocodeSource = "api"
	GeocodeFallback GeocodeSource = "fallback"
)

// GeocodeResult is a resolved city, as stored in the geocode cache.
type GeocodeResult struct {
	Latitude         float64       `json:"latitude"`
	Longitude        float64       `json:"longitude"`
	FormattedAddress string        `json:"formattedAddress"`
	CanonicalCity    string        `json:"canonicalCity"`
	Source           GeocodeSource `json:"source"`
}

// Coordinates returns the result as a LatLng.
func (g GeocodeResult) Coordinates() LatLng {
	return LatLng{Lat: g.Latitude, Lng: g.Longitude}
}

// LocationContext is the geographic reading of a single query.
type LocationContext struct {
	Type        LocationType   `json:"type"`
	City        string         `json:"city,omitempty"`
	Coordinates *LatLng        `json:"coordinates,omitempty"`
	Source      LocationSource `json:"source"`
}

// SearchArea parameterizes the geographic filter of a search. The zero value
// means no geographic constraint.
type SearchArea struct {
	Center   *LatLng      `json:"center,omitempty"`
	RadiusKm *int         `json:"radiusKm,omitempty"`
	Type     LocationType `json:"type,omitempty"`
	City     string       `json:"city,omitempty"`
}
