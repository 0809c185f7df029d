package geospatial

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c * 1000 // meters
}

// BoundingBox returns a bounding box around a point with the given radius in meters.
func BoundingBox(lat, lng, radiusMeters float64) (minLat, minLng, maxLat, maxLng float64) {
	latDelta := radiusMeters / 111320.0
	lngDelta := radiusMeters / (111320.0 * math.Cos(toRad(lat)))

	return lat - latDelta, lng - lngDelta, lat + latDelta, lng + lngDelta
}

// CoordinateKey rounds both coordinates to 5 decimal places (~1m resolution)
// and joins them. Two spots sharing a key are treated as the same location.
func CoordinateKey(lat, lng float64) string {
	return fmt.Sprintf("%.5f_%.5f", lat, lng)
}

// ValidCoordinates reports whether a lat/lng pair is finite, in range, and
// not the zero sentinel many registries emit for "unknown". A zero in either
// axis rejects the pair; real spots on the equator or prime meridian do not
// occur in the covered regions.
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	if lat == 0 || lng == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
