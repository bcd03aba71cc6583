package pointmodel

// Point is a single generated location attributed to a polygon.
type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	PolygonID int64   `json:"polygon_id"`
}

type PointList []Point
