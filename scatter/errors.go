package scatter

import (
	"fmt"

	"github.com/paulmach/orb"
)

// DegenerateRegionError reports a sampling region collapsed to a point or
// line; drawing candidates from it would never satisfy the active polygons.
type DegenerateRegionError struct {
	Bound     orb.Bound
	ActiveIDs []int64
}

func (e *DegenerateRegionError) Error() string {
	return fmt.Sprintf("sampling region %v has zero area, active polygons: %v", e.Bound, e.ActiveIDs)
}

// ConvergenceFailureError reports that the round cap was hit with polygons
// still short of quota. Generated carries the per-polygon accepted counts at
// the moment of failure so the caller can retry with a larger budget.
type ConvergenceFailureError struct {
	Rounds    int
	ActiveIDs []int64
	Generated map[int64]int
}

func (e *ConvergenceFailureError) Error() string {
	return fmt.Sprintf("quotas not satisfied after %d rounds, active polygons: %v", e.Rounds, e.ActiveIDs)
}

// InsufficientPointsError reports a pool smaller than its quota inside the
// exact selector. Unreachable after a converged batch.
type InsufficientPointsError struct {
	PolygonID int64
	Have      int
	Want      int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("polygon %d has %d accepted points, quota is %d", e.PolygonID, e.Have, e.Want)
}
