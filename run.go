package costbasis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Run is the input of an independent reconstruction.
type Run struct {
	Name     string
	Prices   *PriceSeries
	Timeline Timeline
	Shares   float64
}

// ReconstructAll reconstructs every run concurrently, at most limit at a time (no
// limit if limit <= 0).
//
// Runs share no state. The first failure cancels pending runs and is returned,
// named after its run; results are in the same order as runs.
func ReconstructAll(ctx context.Context, runs []Run, limit int) ([]*Series, error) {
	res := make([]*Series, len(runs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, run := range runs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := Reconstruct(run.Prices, run.Timeline, run.Shares)
			if err != nil {
				return fmt.Errorf("%s: %w", run.Name, err)
			}
			res[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
