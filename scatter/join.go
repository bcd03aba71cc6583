package scatter

import (
	"slices"

	"github.com/paulmach/orb"
	"github.com/sourcegraph/conc/pool"

	"github.com/royalcat/geoscatter/polyset"
	"github.com/royalcat/geoscatter/quadtree"
)

type accepted struct {
	point     orb.Point
	polygonID int64
}

// join pairs quadtree leaves with polygons whose bounding boxes intersect
// the leaf extent (broad phase), then runs exact containment for the leaf's
// candidates (narrow phase). Only polygons in active accumulate. Candidates
// inside no polygon are dropped; a candidate inside more than one polygon is
// assigned the lowest id and counted as an overlap violation.
//
// The per-leaf narrow phase runs on a worker pool; results are merged in
// leaf order afterwards, so the output order is deterministic.
func (g *Generator) join(reg *polyset.Registry, tree *quadtree.Tree, candidates []orb.Point, active map[int64]int) ([]accepted, int64) {
	type leafJoin struct {
		node       quadtree.Node
		accepted   []accepted
		violations int64
	}

	var leaves []*leafJoin
	tree.Leaves(func(_ int32, n quadtree.Node) bool {
		if n.End > n.Start {
			leaves = append(leaves, &leafJoin{node: n})
		}
		return true
	})

	workers := pool.New().WithMaxGoroutines(g.cfg.Threads)
	for _, leaf := range leaves {
		workers.Go(func() {
			var ids []int64
			reg.SearchBound(leaf.node.Bound, func(id int64) bool {
				if _, ok := active[id]; ok {
					ids = append(ids, id)
				}
				return true
			})
			if len(ids) == 0 {
				return
			}
			slices.Sort(ids)

			for i := leaf.node.Start; i < leaf.node.End; i++ {
				idx := tree.Idxs[i]
				pt := candidates[idx]

				matches := 0
				var owner int64
				for _, id := range ids {
					if reg.Contains(id, pt[0], pt[1]) {
						matches++
						if matches == 1 {
							owner = id
						}
					}
				}

				if matches == 0 {
					continue
				}
				if matches > 1 {
					leaf.violations++
				}
				leaf.accepted = append(leaf.accepted, accepted{point: pt, polygonID: owner})
			}
		})
	}
	workers.Wait()

	var out []accepted
	var violations int64
	for _, leaf := range leaves {
		out = append(out, leaf.accepted...)
		violations += leaf.violations
	}
	return out, violations
}
