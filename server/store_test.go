package server

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"

	"github.com/royalcat/geoscatter/pointmodel"
)

func storePoints(n int) []pointmodel.Point {
	rng := rand.New(rand.NewSource(1))
	points := make([]pointmodel.Point, n)
	for i := range points {
		points[i] = pointmodel.Point{
			X:         rng.Float64() * 100,
			Y:         rng.Float64() * 100,
			PolygonID: int64(i % 5),
		}
	}
	return points
}

func TestQueryBound(t *testing.T) {
	points := storePoints(1000)
	store := NewPointStore(points)

	query := orb.Bound{Min: orb.Point{25, 25}, Max: orb.Point{75, 75}}
	got := store.QueryBound(query)

	want := 0
	for _, p := range points {
		if query.Contains(orb.Point{p.X, p.Y}) {
			want++
		}
	}
	if len(got) != want {
		t.Fatalf("expected %d points, got %d", want, len(got))
	}
	for _, p := range got {
		if !query.Contains(orb.Point{p.X, p.Y}) {
			t.Fatalf("point (%f, %f) outside query bound", p.X, p.Y)
		}
	}
}

func TestCountByPolygon(t *testing.T) {
	store := NewPointStore(storePoints(1000))

	if store.Len() != 1000 {
		t.Fatalf("expected 1000 points, got %d", store.Len())
	}
	counts := store.CountByPolygon()
	if len(counts) != 5 {
		t.Fatalf("expected 5 polygons, got %d", len(counts))
	}
	for id, count := range counts {
		if count != 200 {
			t.Fatalf("polygon %d: expected 200 points, got %d", id, count)
		}
	}
}
