// Package scatter generates synthetic point locations inside non-overlapping
// polygons so that every polygon receives exactly its quota of points.
//
// A batch runs as rounds of rejection sampling: draw uniform candidates over
// the bounding box of the polygons still short of quota, index them with a
// quadtree, spatially join candidates against polygon boundaries, and
// accumulate accepted points until every quota is met. The accepted pools
// are then trimmed to exact counts deterministically.
package scatter

import (
	"context"
	"log/slog"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/royalcat/geoscatter/pointmodel"
	"github.com/royalcat/geoscatter/polyset"
	"github.com/royalcat/geoscatter/quadtree"
)

type Generator struct {
	cfg     Config
	log     *slog.Logger
	sampler *Sampler
	metrics *metrics

	overlaps *xsync.Counter
}

func NewGenerator(cfg Config, opts ...Option) (*Generator, error) {
	cfg = cfg.withDefaults()
	options := loadOptions(opts...)

	m, err := newMetrics()
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:      cfg,
		log:      options.logger,
		sampler:  NewSampler(cfg.Seed),
		metrics:  m,
		overlaps: xsync.NewCounter(),
	}, nil
}

// Diagnostics are non-fatal data-quality signals accumulated over a
// generator's lifetime.
type Diagnostics struct {
	// OverlapViolations counts candidates that tested inside more than one
	// polygon, breaking the non-overlap invariant of the input set.
	OverlapViolations int64
}

func (g *Generator) Diagnostics() Diagnostics {
	return Diagnostics{OverlapViolations: g.overlaps.Value()}
}

// GenerateBatch runs the convergence loop over one registry until every
// polygon's quota is met, then trims the pools to exact counts.
//
// The loop aborts with DegenerateRegionError when the active bounding box
// collapses to zero area and with ConvergenceFailureError when MaxRounds is
// exceeded; neither is retried internally.
func (g *Generator) GenerateBatch(ctx context.Context, reg *polyset.Registry) (pointmodel.PointList, error) {
	pool := newAccum()

	// remaining maps polygon id to quota for the active set; quota-0
	// polygons never enter it
	remaining := make(map[int64]int, reg.Len())
	for _, p := range reg.Polygons() {
		if p.Quota > 0 {
			remaining[p.ID] = p.Quota
		}
	}

	for round := 1; len(remaining) > 0; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if round > g.cfg.MaxRounds {
			err := &ConvergenceFailureError{
				Rounds:    g.cfg.MaxRounds,
				ActiveIDs: sortedKeys(remaining),
				Generated: generatedCounts(pool, remaining),
			}
			g.log.Warn("convergence failed",
				"rounds", err.Rounds,
				"active_polygons", len(err.ActiveIDs),
				"candidates_per_round", g.cfg.MaxCandidatesPerRound)
			return nil, err
		}

		activeIDs := sortedKeys(remaining)
		bound := reg.BoundOf(activeIDs)
		if bound.Min[0] == bound.Max[0] || bound.Min[1] == bound.Max[1] {
			return nil, &DegenerateRegionError{Bound: bound, ActiveIDs: activeIDs}
		}

		candidates := g.sampler.Uniform(bound, g.cfg.MaxCandidatesPerRound)
		tree := quadtree.Build(candidates, bound, g.cfg.MaxDepth, g.cfg.MinBucketSize)

		acceptedPts, violations := g.join(reg, tree, candidates, remaining)
		for _, a := range acceptedPts {
			pool.add(a.polygonID, a.point)
		}
		g.overlaps.Add(violations)

		g.metrics.candidatesSampled.Add(ctx, int64(len(candidates)))
		g.metrics.pointsAccepted.Add(ctx, int64(len(acceptedPts)))
		g.metrics.roundsRun.Add(ctx, 1)
		g.metrics.overlapViolations.Add(ctx, violations)

		for id, quota := range remaining {
			if pool.count(id) >= quota {
				delete(remaining, id)
			}
		}

		g.log.Debug("round complete",
			"round", round,
			"accepted", len(acceptedPts),
			"still_active", len(remaining))
	}

	return selectExact(reg, pool)
}

func generatedCounts(pool *accum, remaining map[int64]int) map[int64]int {
	counts := make(map[int64]int, len(remaining))
	for id := range remaining {
		counts[id] = pool.count(id)
	}
	return counts
}
