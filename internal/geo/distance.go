// Package geo holds the geometry shared by the location engines: the exact great-circle
// distance used to accept or reject a vehicle, the 1°×1° grid cells, and the degree-space
// search window used to prune cells before any exact distance is computed.
package geo

import (
	"math"

	"vehicle-locator/internal/models"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius of the spherical model.
const EarthRadiusKm = 6371.0

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// GreatCircleKm returns the haversine distance between a and b in kilometers.
func GreatCircleKm(a, b models.Coordinate) float64 {
	from := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	to := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return from.Distance(to).Radians() * EarthRadiusKm
}

// WithinRadius is the exact (narrow phase) test: p is accepted iff its great-circle
// distance to center is at most radiusKm.
func WithinRadius(center, p models.Coordinate, radiusKm float64) bool {
	return GreatCircleKm(center, p) <= radiusKm
}
