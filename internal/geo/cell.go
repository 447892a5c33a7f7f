package geo

import (
	"fmt"
	"math"

	"vehicle-locator/internal/models"

	"github.com/paulmach/orb"
)

// Cell identifies the 1°×1° rectangle [Lat, Lat+1) × [Lon, Lon+1).
type Cell struct {
	Lat int
	Lon int
}

// CellOf returns the cell containing c. Components are floored, not truncated, so -0.5°
// lands in cell -1 and the tiling stays uniform on both sides of the equator and the
// prime meridian.
func CellOf(c models.Coordinate) Cell {
	return Cell{
		Lat: int(math.Floor(c.Latitude)),
		Lon: int(math.Floor(c.Longitude)),
	}
}

// Bound returns the cell rectangle. orb points are (lon, lat).
func (c Cell) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{float64(c.Lon), float64(c.Lat)},
		Max: orb.Point{float64(c.Lon + 1), float64(c.Lat + 1)},
	}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Lat, c.Lon)
}
