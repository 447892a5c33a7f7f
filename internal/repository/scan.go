package repository

import (
	"vehicle-locator/internal/geo"
	"vehicle-locator/internal/models"
)

// ScanRepository answers queries by testing every stored vehicle. It has no index to keep
// in sync and serves as the reference the indexed engines are checked against.
type ScanRepository struct {
	store *LocationStore
}

// NewScanRepository creates a scan engine over store
func NewScanRepository(store *LocationStore) *ScanRepository {
	return &ScanRepository{store: store}
}

// Report records loc as the position of id.
func (r *ScanRepository) Report(id string, loc models.Coordinate) {
	r.store.Put(id, loc)
}

// Query tests every stored vehicle against the radius.
func (r *ScanRepository) Query(center models.Coordinate, radiusKm float64) []string {
	var ids []string
	r.store.Each(func(id string, loc models.Coordinate) {
		if geo.WithinRadius(center, loc, radiusKm) {
			ids = append(ids, id)
		}
	})
	return ids
}

// Locate returns the last reported position of id.
func (r *ScanRepository) Locate(id string) (models.Coordinate, bool) {
	return r.store.Get(id)
}

// Len returns the number of tracked vehicles.
func (r *ScanRepository) Len() int {
	return r.store.Len()
}
