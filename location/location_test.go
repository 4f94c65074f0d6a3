package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menufind/cache"
	"menufind/models"
)

func TestNormalizeCityName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Zagreb", "zagreb"},
		{"  ZAGREBU ", "zagreb"},
		{"Splitu", "split"},
		{"sibenik", "šibenik"},
		{"Šibeniku", "šibenik"},
		{"dakovo", "đakovo"},
		{"Slavonskom   Brodu", "slavonski brod"},
		{"Grožnjan", "grožnjan"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeCityName(tc.in))
		})
	}
}

func TestExtractCity(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
		found bool
	}{
		{"english in", "best burgers in Zagreb tonight", "zagreb", true},
		{"english in unknown place", "seafood in Grožnjan", "grožnjan", true},
		{"english in unknown lowercase", "pizza in berlin", "berlin", true},
		{"english in unknown capitalized", "pizza in Berlin", "berlin", true},
		{"english in non-place word", "pasta in Season", "", false},
		{"english in lowercase filler", "pizza in the oven", "", false},
		{"croatian locative", "Tražim pizzu u Splitu", "split", true},
		{"croatian two-word city", "ćevapi u Slavonskom Brodu", "slavonski brod", true},
		{"croatian lowercase known", "restoran u zagrebu u radijusu 5 km", "zagreb", true},
		{"croatian lowercase unknown", "pizza na tanko", "", false},
		{"croatian title case filler", "Pizza Na Tanko", "", false},
		{"croatian do kuce", "Dostava do Kuće", "", false},
		{"croatian do radius", "burger do 15 km", "", false},
		{"croatian iz", "dostava iz Rijeke", "rijeka", true},
		{"area suffix", "sushi zadar center", "zadar", true},
		{"area suffix mixed case", "pizza Hvar area", "hvar", true},
		{"area suffix unknown word", "best pizza center", "", false},
		{"around a named city", "pizza u okolici Zagreba", "zagreb", true},
		{"generic scan", "vegan osijek", "osijek", true},
		{"generic scan pair", "velika gorica burgeri", "velika gorica", true},
		{"generic scan after centru", "kava u centru zagreba", "zagreb", true},
		{"nothing", "vegan pizza", "", false},
		{"empty", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			city, ok := ExtractCity(tc.query)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, city)
		})
	}
}

func TestIsNearMe(t *testing.T) {
	for _, q := range []string{
		"pizza near me", "restorani blizu mene", "kafić u blizini", "sushi nearby",
		"pizzerija NAJBLIŽE MENI", "something around here", "dinner in my area",
		"burek u mojoj okolici",
	} {
		assert.True(t, IsNearMe(q), q)
	}
	for _, q := range []string{
		"pizza u Zagrebu", "nearbyish", "menestra",
		"pizza u okolici Zagreba", "nearest pizza in Split", "najbliži kafić u Zadru",
	} {
		assert.False(t, IsNearMe(q), q)
	}
}

func TestExtractRadiusKm(t *testing.T) {
	tests := []struct {
		query string
		want  int
		found bool
	}{
		{"pizza within 3 km", 3, true},
		{"within 7 kilometers", 7, true},
		{"burger do 15 km", 15, true},
		{"sushi up to 20km", 20, true},
		{"restoran u Zagrebu u radijusu 5 km", 5, true},
		{"u radijusu od 8 km", 8, true},
		{"bilo što 12 km", 12, true},
		{"unutar 4 kilometra", 4, true},
		{"25 kilometara od centra", 25, true},
		{"pizza 0 km", 0, false},
		{"pizza", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			km, ok := ExtractRadiusKm(tc.query)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, km)
		})
	}
}

func TestDistanceKm(t *testing.T) {
	zagreb := models.LatLng{Lat: 45.8150, Lng: 15.9819}
	split := models.LatLng{Lat: 43.5081, Lng: 16.4402}

	d := DistanceKm(zagreb, split)
	assert.InDelta(t, 259.0, d, 3.0)
	assert.Equal(t, d, DistanceKm(split, zagreb))
	assert.Equal(t, 0.0, DistanceKm(zagreb, zagreb))
	assert.Equal(t, d, float64(int64(d*100+0.5))/100, "rounded to two decimals")
}

func TestAnalyzeContext_CityUsesFallbackWithoutCredential(t *testing.T) {
	r := NewResolver()

	lc := r.AnalyzeContext(context.Background(), "Tražim pizzu u Splitu", nil)

	assert.Equal(t, models.CitySpecific, lc.Type)
	assert.Equal(t, "split", lc.City)
	assert.Equal(t, models.SourceQuery, lc.Source)
	require.NotNil(t, lc.Coordinates)
	assert.Equal(t, models.LatLng{Lat: 43.5081, Lng: 16.4402}, *lc.Coordinates)
}

func TestAnalyzeContext_NearMe(t *testing.T) {
	r := NewResolver()
	user := &models.LatLng{Lat: 45, Lng: 16}

	lc := r.AnalyzeContext(context.Background(), "restorani blizu mene", user)
	assert.Equal(t, models.UserLocation, lc.Type)
	require.NotNil(t, lc.Coordinates)
	assert.Equal(t, *user, *lc.Coordinates)

	noDevice := r.AnalyzeContext(context.Background(), "restorani blizu mene", nil)
	assert.Equal(t, models.NoLocation, noDevice.Type)
	assert.Nil(t, noDevice.Coordinates)
}

func TestAnalyzeContext_NearMeBeatsCity(t *testing.T) {
	r := NewResolver()
	user := &models.LatLng{Lat: 45.1, Lng: 15.2}

	lc := r.AnalyzeContext(context.Background(), "pizza Zagreb near me", user)
	assert.Equal(t, models.UserLocation, lc.Type)
	assert.Equal(t, *user, *lc.Coordinates)
}

func TestAnalyzeContext_CityBeatsDeviceLocation(t *testing.T) {
	r := NewResolver()
	user := &models.LatLng{Lat: 45.1, Lng: 15.2}

	lc := r.AnalyzeContext(context.Background(), "sushi u Rijeci", user)
	assert.Equal(t, models.CitySpecific, lc.Type)
	assert.Equal(t, "rijeka", lc.City)
	assert.Equal(t, 45.3271, lc.Coordinates.Lat)
}

func TestAnalyzeContext_SurroundingsOfCityIsNotNearMe(t *testing.T) {
	r := NewResolver()
	user := &models.LatLng{Lat: 45.1, Lng: 15.2}

	for _, q := range []string{"pizza u okolici Zagreba", "nearest pizza in Zagreb"} {
		lc := r.AnalyzeContext(context.Background(), q, user)
		assert.Equal(t, models.CitySpecific, lc.Type, q)
		assert.Equal(t, "zagreb", lc.City, q)
		assert.Equal(t, models.SourceQuery, lc.Source, q)
	}
}

func TestAnalyzeContext_Defaults(t *testing.T) {
	r := NewResolver()
	user := &models.LatLng{Lat: 44, Lng: 15}

	lc := r.AnalyzeContext(context.Background(), "vegan pizza", user)
	assert.Equal(t, models.UserLocation, lc.Type)
	assert.Equal(t, models.SourceDefault, lc.Source)

	none := r.AnalyzeContext(context.Background(), "vegan pizza", nil)
	assert.Equal(t, models.LocationContext{Type: models.NoLocation, Source: models.SourceNone}, none)
}

func TestSearchArea(t *testing.T) {
	r := NewResolver()
	ctx := context.Background()

	explicit := r.SearchArea(ctx, "restoran u Zagrebu u radijusu 5 km", nil)
	require.NotNil(t, explicit.RadiusKm)
	assert.Equal(t, 5, *explicit.RadiusKm)
	assert.Equal(t, "zagreb", explicit.City)

	city := r.SearchArea(ctx, "pizza u Zagrebu", nil)
	require.NotNil(t, city.RadiusKm)
	assert.Equal(t, DefaultCityRadiusKm, *city.RadiusKm)

	user := r.SearchArea(ctx, "pizza near me", &models.LatLng{Lat: 45, Lng: 16})
	require.NotNil(t, user.Center)
	assert.Nil(t, user.RadiusKm)

	userRadius := r.SearchArea(ctx, "pizza near me within 2 km", &models.LatLng{Lat: 45, Lng: 16})
	require.NotNil(t, userRadius.RadiusKm)
	assert.Equal(t, 2, *userRadius.RadiusKm)

	assert.Equal(t, models.SearchArea{}, r.SearchArea(ctx, "pizza", nil))
	assert.Equal(t, models.SearchArea{}, r.SearchArea(ctx, "seafood in Grožnjan", nil), "unresolved city yields no area")
}

type countingGeocoder struct {
	calls atomic.Int32
	res   *models.GeocodeResult
	err   error
}

func (g *countingGeocoder) Geocode(context.Context, string) (*models.GeocodeResult, error) {
	g.calls.Add(1)
	if g.err != nil {
		return nil, g.err
	}
	res := *g.res
	return &res, nil
}

func TestCityCoordinates_CachesWithinTTL(t *testing.T) {
	g := &countingGeocoder{res: &models.GeocodeResult{Latitude: 45.81, Longitude: 15.98, FormattedAddress: "Zagreb, Hrvatska", Source: models.GeocodeAPI}}
	r := NewResolver(WithGeocoder(g))
	ctx := context.Background()

	first, ok := r.CityCoordinates(ctx, "Zagreb")
	require.True(t, ok)
	second, ok := r.CityCoordinates(ctx, "zagreb")
	require.True(t, ok)

	assert.Equal(t, int32(1), g.calls.Load())
	assert.Equal(t, models.GeocodeAPI, first.Source)
	assert.Equal(t, "zagreb", first.CanonicalCity)
	assert.Equal(t, first, second)
}

func TestCityCoordinates_ExpiresAfterTTL(t *testing.T) {
	g := &countingGeocoder{res: &models.GeocodeResult{Latitude: 1, Longitude: 2, Source: models.GeocodeAPI}}
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	store := cache.NewMemory[models.GeocodeResult](30*time.Minute, cache.WithClock[models.GeocodeResult](func() time.Time { return now }))
	r := NewResolver(WithGeocoder(g), WithStore(store))
	ctx := context.Background()

	_, _ = r.CityCoordinates(ctx, "Zagreb")
	now = now.Add(29 * time.Minute)
	_, _ = r.CityCoordinates(ctx, "Zagreb")
	assert.Equal(t, int32(1), g.calls.Load())

	now = now.Add(time.Minute)
	_, _ = r.CityCoordinates(ctx, "Zagreb")
	assert.Equal(t, int32(2), g.calls.Load())

	require.NoError(t, r.Clear(ctx))
	_, _ = r.CityCoordinates(ctx, "Zagreb")
	assert.Equal(t, int32(3), g.calls.Load())
}

func TestCityCoordinates_FallbackOnFailure(t *testing.T) {
	g := &countingGeocoder{err: ErrGeocodeFailed}
	r := NewResolver(WithGeocoder(g))
	ctx := context.Background()

	res, ok := r.CityCoordinates(ctx, "Osijeku")
	require.True(t, ok)
	assert.Equal(t, models.GeocodeFallback, res.Source)
	assert.Equal(t, "osijek", res.CanonicalCity)
	assert.Equal(t, 45.5550, res.Latitude)

	_, ok = r.CityCoordinates(ctx, "Osijek")
	require.True(t, ok)
	assert.Equal(t, int32(1), g.calls.Load(), "fallback results are cached too")

	_, ok = r.CityCoordinates(ctx, "Atlantida")
	assert.False(t, ok)
	_, ok = r.CityCoordinates(ctx, "   ")
	assert.False(t, ok)
}

func TestGoogleGeocoder(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		assert.Equal(t, "zagreb", q.Get("address"))
		assert.Equal(t, "secret", q.Get("key"))
		assert.Equal(t, "hr", q.Get("region"))
		assert.Equal(t, "hr", q.Get("language"))
		assert.Equal(t, "country:HR", q.Get("components"))
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"geometry": {"location": {"lat": 45.815, "lng": 15.9819}},
				"formatted_address": "Zagreb, Hrvatska",
				"address_components": [{"long_name": "Zagreb", "types": ["locality", "political"]}]
			}]
		}`))
	}))
	defer srv.Close()

	g := NewGoogleGeocoder("secret", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	r := NewResolver(WithGeocoder(g))

	res, ok := r.CityCoordinates(context.Background(), "Zagreb")
	require.True(t, ok)
	assert.Equal(t, models.GeocodeAPI, res.Source)
	assert.Equal(t, "Zagreb, Hrvatska", res.FormattedAddress)
	assert.Equal(t, "zagreb", res.CanonicalCity)

	_, _ = r.CityCoordinates(context.Background(), "Zagreb")
	assert.Equal(t, int32(1), calls.Load())
}

func TestGoogleGeocoder_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer srv.Close()

	g := NewGoogleGeocoder("secret", WithBaseURL(srv.URL))
	_, err := g.Geocode(context.Background(), "split")
	assert.ErrorIs(t, err, ErrGeocodeFailed)

	_, err = NewGoogleGeocoder("").Geocode(context.Background(), "split")
	assert.ErrorIs(t, err, ErrNoCredential)

	r := NewResolver(WithGeocoder(g))
	res, ok := r.CityCoordinates(context.Background(), "split")
	require.True(t, ok)
	assert.Equal(t, models.GeocodeFallback, res.Source)
}

func TestFallbackCities(t *testing.T) {
	cities := FallbackCities()
	assert.Len(t, cities, len(fallbackCoordinates))
	assert.Contains(t, cities, "zagreb")
	for _, c := range cities {
		assert.True(t, IsKnownCity(c), c)
	}
}
