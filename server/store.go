package server

import (
	"github.com/paulmach/orb"

	"github.com/royalcat/geoscatter/pointmodel"
	"github.com/royalcat/geoscatter/quadtree"
)

// PointStore serves read-only queries over a generated point set. The same
// quadtree used during generation doubles as the query index here.
type PointStore struct {
	points pointmodel.PointList
	coords []orb.Point
	tree   *quadtree.Tree
	counts map[int64]int
}

const (
	storeTreeDepth  = 12
	storeBucketSize = 256
)

func NewPointStore(points []pointmodel.Point) *PointStore {
	coords := make([]orb.Point, len(points))
	counts := make(map[int64]int)

	var bound orb.Bound
	for i, p := range points {
		coords[i] = orb.Point{p.X, p.Y}
		counts[p.PolygonID]++
		if i == 0 {
			bound = orb.Bound{Min: coords[i], Max: coords[i]}
		} else {
			bound = bound.Extend(coords[i])
		}
	}

	return &PointStore{
		points: points,
		coords: coords,
		tree:   quadtree.Build(coords, bound, storeTreeDepth, storeBucketSize),
		counts: counts,
	}
}

func (s *PointStore) Len() int {
	return len(s.points)
}

// QueryBound returns every stored point inside b.
func (s *PointStore) QueryBound(b orb.Bound) pointmodel.PointList {
	var out pointmodel.PointList
	s.tree.Search(s.coords, b, func(idx int32) bool {
		out = append(out, s.points[idx])
		return true
	})
	return out
}

// CountByPolygon returns per-polygon point counts.
func (s *PointStore) CountByPolygon() map[int64]int {
	return s.counts
}
