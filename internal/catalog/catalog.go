package catalog

import (
	"fmt"
	"sort"

	"github.com/tidwall/rtree"

	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/pkg/errors"
	"github.com/route-estimation-service/internal/pkg/utils"
)

// Catalog is the immutable stop registry. It is built once at startup and
// never mutated afterwards, so all methods are safe for concurrent use.
type Catalog struct {
	byID    map[string]domain.Stop
	ordered []domain.Stop
	index   rtree.RTreeG[string]
	bounds  domain.BoundingBox
}

// New validates the loaded stops and builds the id map and the spatial
// index. Any defect in the dataset aborts the build: a catalog that loaded
// is a catalog that can be trusted.
func New(stops []domain.Stop, bounds domain.BoundingBox) (*Catalog, error) {
	if len(stops) == 0 {
		return nil, errors.ErrCatalogLoadFailure.WithMessage("stop catalog is empty")
	}

	c := &Catalog{
		byID:    make(map[string]domain.Stop, len(stops)),
		ordered: make([]domain.Stop, 0, len(stops)),
		bounds:  bounds,
	}

	for i, stop := range stops {
		if stop.ID == "" {
			return nil, errors.ErrCatalogLoadFailure.WithMessage(
				fmt.Sprintf("stop at position %d has an empty id", i))
		}
		if _, exists := c.byID[stop.ID]; exists {
			return nil, errors.ErrCatalogLoadFailure.WithMessage(
				fmt.Sprintf("duplicate stop id %q", stop.ID))
		}
		if !utils.ValidateCoordinates(stop.Latitude, stop.Longitude) {
			return nil, errors.ErrCatalogLoadFailure.WithMessage(
				fmt.Sprintf("stop %q: invalid coordinates (%.5f, %.5f)", stop.ID, stop.Latitude, stop.Longitude))
		}
		if !bounds.Contains(stop.Point()) {
			return nil, errors.ErrCatalogLoadFailure.WithMessage(
				fmt.Sprintf("stop %q at (%.5f, %.5f) lies outside the service area", stop.ID, stop.Latitude, stop.Longitude))
		}
		if stop.Popularity <= 0 {
			stop.Popularity = domain.DerivePopularity(stop.Category, stop.District)
		}

		c.byID[stop.ID] = stop
		c.ordered = append(c.ordered, stop)
		pt := [2]float64{stop.Longitude, stop.Latitude}
		c.index.Insert(pt, pt, stop.ID)
	}

	return c, nil
}

// Lookup returns the stop with the given id.
func (c *Catalog) Lookup(id string) (domain.Stop, bool) {
	stop, ok := c.byID[id]
	return stop, ok
}

// All returns the stops in load order. The slice is a copy, callers may
// mutate it freely.
func (c *Catalog) All() []domain.Stop {
	out := make([]domain.Stop, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Size returns the number of stops in the catalog.
func (c *Catalog) Size() int {
	return len(c.ordered)
}

// Bounds returns the service area the catalog was validated against.
func (c *Catalog) Bounds() domain.BoundingBox {
	return c.bounds
}

// Nearest returns up to limit stops ordered by haversine distance from the
// given point. The r-tree walk orders candidates in degree space, which can
// swap two near-equidistant stops, so it over-collects and re-sorts on the
// true distance before trimming.
func (c *Catalog) Nearest(lat, lon float64, limit int) []domain.StopDistance {
	if limit <= 0 {
		return nil
	}

	fetch := limit * 2
	if fetch > len(c.ordered) {
		fetch = len(c.ordered)
	}

	target := [2]float64{lon, lat}
	candidates := make([]domain.StopDistance, 0, fetch)
	c.index.Nearby(
		rtree.BoxDist[float64, string](target, target, nil),
		func(min, max [2]float64, id string, dist float64) bool {
			stop := c.byID[id]
			candidates = append(candidates, domain.StopDistance{
				Stop:       stop,
				DistanceKm: utils.HaversineDistance(lat, lon, stop.Latitude, stop.Longitude),
			})
			return len(candidates) < fetch
		},
	)

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
