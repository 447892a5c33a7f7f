package repository

import (
	"sync"

	"vehicle-locator/internal/geo"
	"vehicle-locator/internal/models"

	"github.com/dhconnelly/rtreego"
	"github.com/rs/zerolog"
)

const (
	tolerance   = 1e-6
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

// vehicleItem wraps a reported position to implement rtreego.Spatial.
// Dimension 0 is latitude, dimension 1 is longitude.
type vehicleItem struct {
	id   string
	rect rtreego.Rect
}

func (v *vehicleItem) Bounds() rtreego.Rect {
	return v.rect
}

func newVehicleItem(id string, loc models.Coordinate) *vehicleItem {
	p := rtreego.Point{loc.Latitude, loc.Longitude}
	return &vehicleItem{id: id, rect: p.ToRect(tolerance)}
}

// RTreeRepository indexes vehicles in an R-tree. The broad phase searches the tree with
// the degree-space windows of the query, the narrow phase checks exact distances against
// the store. One RWMutex guards the tree, the item table and the store.
type RTreeRepository struct {
	mu     sync.RWMutex
	tree   *rtreego.Rtree
	items  map[string]*vehicleItem
	store  *LocationStore
	logger zerolog.Logger
}

// NewRTreeRepository creates an empty R-tree engine over store
func NewRTreeRepository(store *LocationStore, logger zerolog.Logger) *RTreeRepository {
	return &RTreeRepository{
		tree:   rtreego.NewTree(dimensions, minChildren, maxChildren),
		items:  make(map[string]*vehicleItem),
		store:  store,
		logger: logger,
	}
}

// Report replaces the tree item of id with one at loc.
func (r *RTreeRepository) Report(id string, loc models.Coordinate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.items[id]; ok {
		if !r.tree.Delete(prev) {
			inconsistent(r.logger, id, "vehicle missing from r-tree")
		}
	}

	r.store.Put(id, loc)

	item := newVehicleItem(id, loc)
	r.tree.Insert(item)
	r.items[id] = item
}

// Query returns the ids within radiusKm of center, in no particular order.
func (r *RTreeRepository) Query(center models.Coordinate, radiusKm float64) []string {
	window := geo.NewSearchWindow(center, radiusKm)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	seen := make(map[string]struct{})
	for _, b := range window.Bounds() {
		bounds, err := rtreego.NewRectFromPoints(
			rtreego.Point{b.Bottom(), b.Left()},
			rtreego.Point{b.Top(), b.Right()},
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("invalid search window")
			continue
		}

		for _, result := range r.tree.SearchIntersect(bounds) {
			item, ok := result.(*vehicleItem)
			if !ok {
				continue
			}
			if _, dup := seen[item.id]; dup {
				continue
			}
			seen[item.id] = struct{}{}

			loc, ok := r.store.Get(item.id)
			if !ok {
				inconsistent(r.logger, item.id, "indexed vehicle missing from store")
			}
			if geo.WithinRadius(center, loc, radiusKm) {
				ids = append(ids, item.id)
			}
		}
	}
	return ids
}

// Locate returns the last reported position of id.
func (r *RTreeRepository) Locate(id string) (models.Coordinate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.Get(id)
}

// Len returns the number of items in the tree.
func (r *RTreeRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tree.Size()
}
