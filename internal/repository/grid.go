package repository

import (
	"sync"

	"vehicle-locator/internal/geo"
	"vehicle-locator/internal/models"

	"github.com/rs/zerolog"
)

// GridRepository buckets vehicles into 1°×1° cells. A query first keeps the populated
// cells that may overlap the search circle (broad phase), then checks the exact
// great-circle distance of every vehicle in those cells (narrow phase).
//
// One RWMutex covers the cells and the store, so a vehicle moving between cells is never
// seen in zero or two cells by a concurrent query.
type GridRepository struct {
	mu     sync.RWMutex
	store  *LocationStore
	cells  map[geo.Cell]map[string]struct{}
	logger zerolog.Logger
}

// NewGridRepository creates an empty grid over store. The store must be empty or owned
// exclusively by the grid from here on.
func NewGridRepository(store *LocationStore, logger zerolog.Logger) *GridRepository {
	return &GridRepository{
		store:  store,
		cells:  make(map[geo.Cell]map[string]struct{}),
		logger: logger,
	}
}

// Report moves id out of its previous cell, if any, records loc and files id under the
// cell of loc.
func (r *GridRepository) Report(id string, loc models.Coordinate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.store.Get(id); ok {
		r.evict(id, geo.CellOf(prev))
	}

	r.store.Put(id, loc)

	cell := geo.CellOf(loc)
	members, ok := r.cells[cell]
	if !ok {
		members = make(map[string]struct{})
		r.cells[cell] = members
	}
	members[id] = struct{}{}
}

func (r *GridRepository) evict(id string, cell geo.Cell) {
	members := r.cells[cell]
	if _, ok := members[id]; !ok {
		inconsistent(r.logger, id, "vehicle missing from cell "+cell.String())
	}
	delete(members, id)
	if len(members) == 0 {
		delete(r.cells, cell)
	}
}

// Query returns the ids within radiusKm of center, in no particular order.
func (r *GridRepository) Query(center models.Coordinate, radiusKm float64) []string {
	window := geo.NewSearchWindow(center, radiusKm)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for cell, members := range r.cells {
		if !window.MayContain(cell.Bound()) {
			continue
		}
		for id := range members {
			loc, ok := r.store.Get(id)
			if !ok {
				inconsistent(r.logger, id, "indexed vehicle missing from store")
			}
			if geo.WithinRadius(center, loc, radiusKm) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Locate returns the last reported position of id.
func (r *GridRepository) Locate(id string) (models.Coordinate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.Get(id)
}

// Len returns the number of tracked vehicles.
func (r *GridRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.Len()
}
