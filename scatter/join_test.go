package scatter

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/royalcat/geoscatter/polyset"
	"github.com/royalcat/geoscatter/quadtree"
)

func TestJoinSharedEdgeResolvesToLowestID(t *testing.T) {
	reg, err := polyset.NewRegistry([]polyset.Polygon{
		{ID: 1, Rings: orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}, Quota: 10},
		{ID: 2, Rings: orb.Polygon{{{10, 0}, {20, 0}, {20, 10}, {10, 10}, {10, 0}}}, Quota: 10},
	})
	if err != nil {
		t.Fatal(err)
	}

	candidates := []orb.Point{
		{10, 5},  // on the shared edge, inside both
		{5, 5},   // strictly inside 1
		{15, 5},  // strictly inside 2
		{25, 25}, // inside neither
	}
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{30, 30}}
	tree := quadtree.Build(candidates, bound, 2, 1)

	gen, err := NewGenerator(Config{Threads: 2, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	active := map[int64]int{1: 10, 2: 10}
	acceptedPts, violations := gen.join(reg, tree, candidates, active)

	if violations != 1 {
		t.Fatalf("expected 1 overlap violation, got %d", violations)
	}
	if len(acceptedPts) != 3 {
		t.Fatalf("expected 3 accepted points, got %d", len(acceptedPts))
	}

	owners := map[orb.Point]int64{}
	for _, a := range acceptedPts {
		owners[a.point] = a.polygonID
	}
	if owners[orb.Point{10, 5}] != 1 {
		t.Fatalf("expected shared-edge point owned by polygon 1, got %d", owners[orb.Point{10, 5}])
	}
	if owners[orb.Point{5, 5}] != 1 || owners[orb.Point{15, 5}] != 2 {
		t.Fatalf("unexpected owners: %v", owners)
	}
}

func TestJoinIgnoresInactivePolygons(t *testing.T) {
	reg, err := polyset.NewRegistry([]polyset.Polygon{
		{ID: 1, Rings: orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}, Quota: 10},
		{ID: 2, Rings: orb.Polygon{{{10, 0}, {20, 0}, {20, 10}, {10, 10}, {10, 0}}}, Quota: 10},
	})
	if err != nil {
		t.Fatal(err)
	}

	candidates := []orb.Point{{5, 5}, {15, 5}}
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{20, 10}}
	tree := quadtree.Build(candidates, bound, 2, 1)

	gen, err := NewGenerator(Config{Threads: 2, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	acceptedPts, _ := gen.join(reg, tree, candidates, map[int64]int{2: 10})
	if len(acceptedPts) != 1 {
		t.Fatalf("expected 1 accepted point, got %d", len(acceptedPts))
	}
	if acceptedPts[0].polygonID != 2 {
		t.Fatalf("expected polygon 2, got %d", acceptedPts[0].polygonID)
	}
}
