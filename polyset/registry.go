// Package polyset holds an immutable collection of non-overlapping polygons
// with per-polygon point quotas. It is the read-only side of point
// generation: bounding boxes, a broad-phase bbox index and exact containment.
package polyset

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/tidwall/qtree"
)

// Polygon is one registry member. Ring 0 of Rings is the outer boundary,
// the remaining rings are holes.
type Polygon struct {
	ID    int64
	Rings orb.Polygon
	Quota int
}

type InvalidGeometryError struct {
	PolygonID int64
	Reason    string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry for polygon %d: %s", e.PolygonID, e.Reason)
}

// Registry is safe for concurrent reads after construction.
type Registry struct {
	polygons []Polygon
	byID     map[int64]int
	bounds   []orb.Bound
	union    orb.Bound
	qt       qtree.QTree
}

func NewRegistry(polygons []Polygon) (*Registry, error) {
	r := &Registry{
		polygons: polygons,
		byID:     make(map[int64]int, len(polygons)),
		bounds:   make([]orb.Bound, len(polygons)),
	}

	for i, p := range polygons {
		if err := validate(p); err != nil {
			return nil, err
		}
		if _, ok := r.byID[p.ID]; ok {
			return nil, &InvalidGeometryError{PolygonID: p.ID, Reason: "duplicate polygon id"}
		}
		r.byID[p.ID] = i

		bound := p.Rings.Bound()
		r.bounds[i] = bound
		r.qt.Insert(bound.Min, bound.Max, uint64(i))

		if i == 0 {
			r.union = bound
		} else {
			r.union = r.union.Union(bound)
		}
	}

	return r, nil
}

func validate(p Polygon) error {
	if p.Quota < 0 {
		return &InvalidGeometryError{PolygonID: p.ID, Reason: "negative quota"}
	}
	if len(p.Rings) == 0 {
		return &InvalidGeometryError{PolygonID: p.ID, Reason: "no rings"}
	}
	for _, ring := range p.Rings {
		if !ring.Closed() {
			return &InvalidGeometryError{PolygonID: p.ID, Reason: "ring is not closed"}
		}
		// a closed ring repeats its first point, so 3 distinct vertices
		// means at least 4 stored points
		if len(ring) < 4 {
			return &InvalidGeometryError{PolygonID: p.ID, Reason: "ring has fewer than 3 vertices"}
		}
	}
	return nil
}

func (r *Registry) Len() int {
	return len(r.polygons)
}

func (r *Registry) Polygons() []Polygon {
	return r.polygons
}

func (r *Registry) Quota(id int64) int {
	return r.polygons[r.byID[id]].Quota
}

// Bound returns the bounding box of a single polygon.
func (r *Registry) Bound(id int64) orb.Bound {
	return r.bounds[r.byID[id]]
}

// UnionBound is the bounding box of the whole registry.
func (r *Registry) UnionBound() orb.Bound {
	return r.union
}

// BoundOf unions the bounding boxes of the given polygon ids. ids must be
// non-empty and registered.
func (r *Registry) BoundOf(ids []int64) orb.Bound {
	bound := r.bounds[r.byID[ids[0]]]
	for _, id := range ids[1:] {
		bound = bound.Union(r.bounds[r.byID[id]])
	}
	return bound
}

// Contains reports whether the point lies inside the polygon's outer ring
// and outside its holes. Ring boundaries count as inside.
func (r *Registry) Contains(id int64, x, y float64) bool {
	return planar.PolygonContains(r.polygons[r.byID[id]].Rings, orb.Point{x, y})
}

// SearchBound calls fn with the id of every polygon whose bounding box
// intersects b. fn returning false stops the search.
func (r *Registry) SearchBound(b orb.Bound, fn func(id int64) bool) {
	r.qt.Search(b.Min, b.Max, func(_, _ [2]float64, data interface{}) bool {
		return fn(r.polygons[data.(uint64)].ID)
	})
}
