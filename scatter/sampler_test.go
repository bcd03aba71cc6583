package scatter

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestUniformStaysInBound(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{-5, 10}, Max: orb.Point{5, 30}}

	pts := NewSampler(1).Uniform(bound, 1000)
	if len(pts) != 1000 {
		t.Fatalf("expected 1000 points, got %d", len(pts))
	}
	for _, p := range pts {
		if !bound.Contains(p) {
			t.Fatalf("point %v outside bound", p)
		}
	}
}

func TestUniformDegenerateBoundPinsAxis(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{3, 0}, Max: orb.Point{3, 10}}

	for _, p := range NewSampler(1).Uniform(bound, 100) {
		if p[0] != 3 {
			t.Fatalf("expected x pinned to 3, got %f", p[0])
		}
		if p[1] < 0 || p[1] > 10 {
			t.Fatalf("y %f outside bound", p[1])
		}
	}
}

func TestUniformSeedReproducible(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}

	a := NewSampler(42).Uniform(bound, 500)
	b := NewSampler(42).Uniform(bound, 500)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sequences diverge at %d", i)
		}
	}
}

func TestSpreadRespectsSpacing(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}

	pts := NewSampler(7).Spread(bound, 1)
	if len(pts) == 0 {
		t.Fatal("expected points")
	}
	for _, p := range pts {
		if !bound.Contains(p) {
			t.Fatalf("point %v outside bound", p)
		}
	}
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			dx := pts[i][0] - pts[j][0]
			dy := pts[i][1] - pts[j][1]
			if dx*dx+dy*dy < 1 {
				t.Fatalf("points %v and %v closer than the minimum spacing", pts[i], pts[j])
			}
		}
	}
}
