package repository

import (
	"vehicle-locator/internal/models"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// LocationStore is the ground truth: the last reported coordinate of every vehicle.
// It is sharded by vehicle id and safe for concurrent use.
type LocationStore struct {
	locations cmap.ConcurrentMap[string, models.Coordinate]
}

// NewLocationStore creates an empty store
func NewLocationStore() *LocationStore {
	return &LocationStore{locations: cmap.New[models.Coordinate]()}
}

// Put stores loc as the current position of id, replacing any previous one.
func (s *LocationStore) Put(id string, loc models.Coordinate) {
	s.locations.Set(id, loc)
}

// Get returns the current position of id.
func (s *LocationStore) Get(id string) (models.Coordinate, bool) {
	return s.locations.Get(id)
}

// Len returns the number of known vehicles.
func (s *LocationStore) Len() int {
	return s.locations.Count()
}

// Each calls fn for every vehicle. Each shard is read-locked while it is visited, so fn
// must not write to the store.
func (s *LocationStore) Each(fn func(id string, loc models.Coordinate)) {
	s.locations.IterCb(fn)
}
