package main

import (
	"math/rand"

	"vehicle-locator/internal/models"

	"github.com/google/uuid"
)

type vehicle struct {
	id  string
	loc models.Coordinate
}

// generateFleet creates n vehicles with reproducible uuid ids. Most sit in a dense
// region, the rest are spread over the antimeridian, the poles and the whole globe.
func generateFleet(r *rand.Rand, n int) []vehicle {
	fleet := make([]vehicle, n)
	for i := range fleet {
		id, err := uuid.NewRandomFromReader(r)
		if err != nil {
			panic(err)
		}
		fleet[i] = vehicle{id: id.String(), loc: randomCoordinate(r)}
	}
	return fleet
}

func randomCoordinate(r *rand.Rand) models.Coordinate {
	switch p := r.Float64(); {
	case p < 0.7: // roughly the USA
		return models.Coordinate{Latitude: 25 + r.Float64()*24, Longitude: -125 + r.Float64()*59}
	case p < 0.8:
		lon := 178 + r.Float64()*2
		if r.Intn(2) == 0 {
			lon = -lon
		}
		return models.Coordinate{Latitude: r.Float64()*40 - 20, Longitude: lon}
	case p < 0.9:
		lat := 85 + r.Float64()*5
		if r.Intn(2) == 0 {
			lat = -lat
		}
		return models.Coordinate{Latitude: lat, Longitude: r.Float64()*360 - 180}
	default:
		return models.Coordinate{Latitude: r.Float64()*180 - 90, Longitude: r.Float64()*360 - 180}
	}
}
