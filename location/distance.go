package location

import (
	"math"

	"menufind/models"
)

const earthRadiusKm = 6371.0

// DistanceKm is the great-circle distance between a and b in kilometers,
// rounded to two decimals.
func DistanceKm(a, b models.LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	d := 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return math.Round(d*100) / 100
}
