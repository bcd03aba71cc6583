package main

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/royalcat/geoscatter/polyset"
)

// loadPolygons reads a GeoJSON feature collection of polygons. The quota of
// each polygon comes from quotaProperty; the id from the "id" property when
// present, otherwise the feature index.
func loadPolygons(name, quotaProperty string) ([]polyset.Polygon, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing feature collection: %w", err)
	}

	polygons := make([]polyset.Polygon, 0, len(fc.Features))
	for i, feature := range fc.Features {
		rings, ok := feature.Geometry.(orb.Polygon)
		if !ok {
			return nil, fmt.Errorf("feature %d: unsupported geometry type %q", i, feature.Geometry.GeoJSONType())
		}

		polygons = append(polygons, polyset.Polygon{
			ID:    int64(feature.Properties.MustFloat64("id", float64(i))),
			Rings: rings,
			Quota: int(feature.Properties.MustFloat64(quotaProperty, 0)),
		})
	}

	return polygons, nil
}
