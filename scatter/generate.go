package scatter

import (
	"context"
	"fmt"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/cheggaaa/pb/v3/termutil"
	"golang.org/x/sync/errgroup"

	"github.com/royalcat/geoscatter/pointmodel"
	"github.com/royalcat/geoscatter/polyset"
)

// Generate partitions the polygon set into contiguous batches and runs them
// concurrently. Batches share no mutable state; each gets its own registry
// and a seed derived from Config.Seed, so a fixed seed reproduces the full
// output. Results are concatenated in batch order.
func Generate(ctx context.Context, cfg Config, polygons []polyset.Polygon, opts ...Option) (pointmodel.PointList, Diagnostics, error) {
	cfg = cfg.withDefaults()
	batches := partitionBatches(polygons, cfg.BatchSize)

	results := make([]pointmodel.PointList, len(batches))
	diags := make([]Diagnostics, len(batches))

	bar := pb.StartNew(len(batches))
	bar.Set("prefix", "generating points")
	bar.SetRefreshRate(time.Second)
	if w, err := termutil.TerminalWidth(); w == 0 || err != nil {
		bar.SetTemplateString(`{{with string . "prefix"}}{{.}} {{end}}{{counters . }} {{bar . }} {{percent . }} {{speed . }} {{rtime . "ETA %s"}}{{with string . "suffix"}} {{.}}{{end}}` + "\n")
	}
	defer bar.Finish()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Threads)
	for i, batch := range batches {
		eg.Go(func() error {
			reg, err := polyset.NewRegistry(batch)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}

			batchCfg := cfg
			batchCfg.Seed = cfg.Seed + int64(i)
			gen, err := NewGenerator(batchCfg, opts...)
			if err != nil {
				return err
			}

			points, err := gen.GenerateBatch(ctx, reg)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}

			results[i] = points
			diags[i] = gen.Diagnostics()
			bar.Increment()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, Diagnostics{}, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make(pointmodel.PointList, 0, total)
	var diag Diagnostics
	for i, r := range results {
		out = append(out, r...)
		diag.OverlapViolations += diags[i].OverlapViolations
	}
	return out, diag, nil
}

func partitionBatches(polygons []polyset.Polygon, size int) [][]polyset.Polygon {
	if size <= 0 {
		size = ConfigDefault().BatchSize
	}

	var batches [][]polyset.Polygon
	for start := 0; start < len(polygons); start += size {
		end := min(start+size, len(polygons))
		batches = append(batches, polygons[start:end])
	}
	return batches
}
