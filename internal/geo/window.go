package geo

import (
	"math"

	"vehicle-locator/internal/models"

	"github.com/paulmach/orb"
)

// broadPhaseSlack widens every broad-phase comparison so that rounding at the exact
// boundary can only let extra candidates through.
const broadPhaseSlack = 1e-7

// SearchWindow is the degree-space footprint of a radius query. It only ever prunes:
// any point within the great-circle radius of Center lies inside the window.
//
// LatSpan is the angular radius in degrees. LonSpan is the widest longitude deviation of
// the spherical cap around Center, or 180 when the cap covers a pole. Reach is the
// Euclidean degree distance that bounds every (Δlat, Δlon) pair allowed by the spans.
type SearchWindow struct {
	Center  models.Coordinate
	LatSpan float64
	LonSpan float64
	Reach   float64
}

// NewSearchWindow builds the window for a query of radiusKm around center.
func NewSearchWindow(center models.Coordinate, radiusKm float64) SearchWindow {
	angular := math.Min(radiusKm/EarthRadiusKm, math.Pi)

	lonSpan := 180.0
	if angular < math.Pi/2 {
		sinR := math.Sin(angular)
		cosLat := math.Cos(center.Latitude * degToRad)
		if sinR < cosLat {
			lonSpan = math.Asin(sinR/cosLat) * radToDeg
		}
	}
	latSpan := angular * radToDeg

	return SearchWindow{
		Center:  center,
		LatSpan: latSpan,
		LonSpan: lonSpan,
		Reach:   math.Hypot(latSpan, lonSpan) + broadPhaseSlack,
	}
}

// MayContain is the broad-phase circle/rectangle overlap test. The center is clamped into
// the rectangle to find its nearest point, and the rectangle is kept if that point is
// within Reach of the center in degree units. The longitude gap is measured around the
// circle, so rectangles on the far side of the antimeridian are not lost.
func (w SearchWindow) MayContain(b orb.Bound) bool {
	dLat := w.Center.Latitude - clamp(w.Center.Latitude, b.Bottom(), b.Top())
	dLon := lonGap(w.Center.Longitude, b.Left(), b.Right())
	return math.Hypot(dLat, dLon) <= w.Reach
}

// Bounds returns the window as lon/lat rectangles, split in two when it crosses ±180°.
func (w SearchWindow) Bounds() []orb.Bound {
	south := math.Max(-90, w.Center.Latitude-w.LatSpan-broadPhaseSlack)
	north := math.Min(90, w.Center.Latitude+w.LatSpan+broadPhaseSlack)

	if w.LonSpan >= 180 {
		return []orb.Bound{lonLatBound(-180, 180, south, north)}
	}

	west := w.Center.Longitude - w.LonSpan - broadPhaseSlack
	east := w.Center.Longitude + w.LonSpan + broadPhaseSlack
	switch {
	case west < -180:
		return []orb.Bound{
			lonLatBound(west+360, 180, south, north),
			lonLatBound(-180, east, south, north),
		}
	case east > 180:
		return []orb.Bound{
			lonLatBound(west, 180, south, north),
			lonLatBound(-180, east-360, south, north),
		}
	default:
		return []orb.Bound{lonLatBound(west, east, south, north)}
	}
}

func lonLatBound(west, east, south, north float64) orb.Bound {
	return orb.Bound{Min: orb.Point{west, south}, Max: orb.Point{east, north}}
}

// lonGap is the shortest longitude distance from lon to the interval [left, right],
// taking the ±360° copies of the interval into account.
func lonGap(lon, left, right float64) float64 {
	gap := math.Inf(1)
	for _, shift := range [...]float64{-360, 0, 360} {
		nearest := clamp(lon, left+shift, right+shift)
		gap = math.Min(gap, math.Abs(lon-nearest))
	}
	return gap
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
