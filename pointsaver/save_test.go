package pointsaver_test

import (
	"bytes"
	"encoding/gob"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/royalcat/geoscatter/pointmodel"
	"github.com/royalcat/geoscatter/pointsaver"
)

func testPoints() []pointmodel.Point {
	return []pointmodel.Point{
		{X: 1.5, Y: 2.5, PolygonID: 1},
		{X: 10, Y: 20, PolygonID: 2},
		{X: -3.25, Y: 0, PolygonID: 2},
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	points := testPoints()
	meta := pointsaver.Metadata{
		Version:     1,
		Seed:        42,
		DateCreated: time.Now(),
	}

	var buf bytes.Buffer
	if err := pointsaver.Save(points, meta, &buf); err != nil {
		t.Fatal(err)
	}

	loaded, err := pointsaver.LoadFromReader(&buf, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}

	if len(loaded) != len(points) {
		t.Fatalf("expected %d points, got %d", len(points), len(loaded))
	}
	for i := range points {
		if loaded[i] != points[i] {
			t.Fatalf("point %d: expected %+v, got %+v", i, points[i], loaded[i])
		}
	}
}

func TestLoadLegacyPlainGob(t *testing.T) {
	points := testPoints()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(points); err != nil {
		t.Fatal(err)
	}

	loaded, err := pointsaver.LoadFromReader(&buf, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}

	if len(loaded) != len(points) {
		t.Fatalf("expected %d points, got %d", len(points), len(loaded))
	}
	for i := range points {
		if loaded[i] != points[i] {
			t.Fatalf("point %d: expected %+v, got %+v", i, points[i], loaded[i])
		}
	}
}
