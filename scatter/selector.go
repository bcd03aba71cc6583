package scatter

import (
	"github.com/google/btree"
	"github.com/paulmach/orb"

	"github.com/royalcat/geoscatter/pointmodel"
	"github.com/royalcat/geoscatter/polyset"
)

// accum is the per-batch accepted-point pool. It is owned exclusively by the
// convergence loop and written by a single goroutine between rounds. The
// btree keeps polygon ids iterable in ascending order for the selector.
type accum struct {
	ids   *btree.BTreeG[int64]
	pools map[int64][]orb.Point
}

func newAccum() *accum {
	return &accum{
		ids:   btree.NewG(16, func(a, b int64) bool { return a < b }),
		pools: make(map[int64][]orb.Point),
	}
}

func (a *accum) add(id int64, p orb.Point) {
	if _, ok := a.pools[id]; !ok {
		a.ids.ReplaceOrInsert(id)
	}
	a.pools[id] = append(a.pools[id], p)
}

func (a *accum) count(id int64) int {
	return len(a.pools[id])
}

func (a *accum) ascend(fn func(id int64, pts []orb.Point) bool) {
	a.ids.Ascend(func(id int64) bool {
		return fn(id, a.pools[id])
	})
}

// selectExact trims every polygon's pool to exactly its quota: ascending
// polygon id, then generation order within a polygon. Re-running it over the
// same pool yields the same records.
func selectExact(reg *polyset.Registry, pool *accum) (pointmodel.PointList, error) {
	total := 0
	for _, p := range reg.Polygons() {
		if p.Quota == 0 {
			continue
		}
		if have := pool.count(p.ID); have < p.Quota {
			return nil, &InsufficientPointsError{PolygonID: p.ID, Have: have, Want: p.Quota}
		}
		total += p.Quota
	}

	out := make(pointmodel.PointList, 0, total)
	pool.ascend(func(id int64, pts []orb.Point) bool {
		for _, pt := range pts[:reg.Quota(id)] {
			out = append(out, pointmodel.Point{X: pt[0], Y: pt[1], PolygonID: id})
		}
		return true
	})
	return out, nil
}
