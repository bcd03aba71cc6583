package quadtree_test

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/royalcat/geoscatter/quadtree"
)

func testPoints(n int, bound orb.Bound) []orb.Point {
	rng := rand.New(rand.NewSource(42))
	pts := make([]orb.Point, n)
	for i := range pts {
		pts[i] = orb.Point{
			bound.Min[0] + rng.Float64()*(bound.Max[0]-bound.Min[0]),
			bound.Min[1] + rng.Float64()*(bound.Max[1]-bound.Min[1]),
		}
	}
	return pts
}

func TestLeafRangesPartitionPoints(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}
	pts := testPoints(1000, bound)

	tree := quadtree.Build(pts, bound, 6, 16)

	seen := make(map[int32]int)
	tree.Leaves(func(handle int32, n quadtree.Node) bool {
		for i := n.Start; i < n.End; i++ {
			idx := tree.Idxs[i]
			seen[idx]++
			if !n.Bound.Contains(pts[idx]) {
				t.Fatalf("point %d outside its leaf bound", idx)
			}
			if tree.LeafOf(int(idx)) != handle {
				t.Fatalf("LeafOf(%d) does not match owning leaf", idx)
			}
		}
		return true
	})

	if len(seen) != len(pts) {
		t.Fatalf("expected %d points across leaves, got %d", len(pts), len(seen))
	}
	for idx, count := range seen {
		if count != 1 {
			t.Fatalf("point %d owned by %d leaves", idx, count)
		}
	}
}

func TestCoincidentPointsDoNotRecurse(t *testing.T) {
	pts := make([]orb.Point, 500)
	for i := range pts {
		pts[i] = orb.Point{5, 5}
	}
	bound := orb.Bound{Min: orb.Point{5, 5}, Max: orb.Point{5, 5}}

	tree := quadtree.Build(pts, bound, 30, 1)
	if len(tree.Nodes) != 1 {
		t.Fatalf("expected a single leaf for coincident points, got %d nodes", len(tree.Nodes))
	}
	if !tree.Nodes[0].Leaf {
		t.Fatal("expected root to be a leaf")
	}
}

func TestMinBucketStopsSplitting(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}
	pts := testPoints(10, bound)

	tree := quadtree.Build(pts, bound, 8, 50)
	if len(tree.Nodes) != 1 {
		t.Fatalf("expected no split below min bucket size, got %d nodes", len(tree.Nodes))
	}
}

func TestBuildDeterministic(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}
	pts := testPoints(2000, bound)

	a := quadtree.Build(pts, bound, 6, 16)
	b := quadtree.Build(pts, bound, 6, 16)

	if len(a.Nodes) != len(b.Nodes) {
		t.Fatalf("node counts differ: %d vs %d", len(a.Nodes), len(b.Nodes))
	}
	for i := range a.Idxs {
		if a.Idxs[i] != b.Idxs[i] {
			t.Fatalf("index order differs at %d", i)
		}
	}
}

func TestSearch(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}
	pts := testPoints(1000, bound)
	tree := quadtree.Build(pts, bound, 6, 16)

	query := orb.Bound{Min: orb.Point{20, 20}, Max: orb.Point{40, 40}}

	found := make(map[int32]bool)
	tree.Search(pts, query, func(idx int32) bool {
		found[idx] = true
		return true
	})

	for i, p := range pts {
		if query.Contains(p) != found[int32(i)] {
			t.Fatalf("point %d: expected found=%v", i, query.Contains(p))
		}
	}
}
