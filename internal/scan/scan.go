package scan

import (
	"context"
	"fmt"
	"sync"

	"github.com/project-singularity/oscollapse/internal/collapse"
)

// Point is the outcome of one grid evaluation.
// Either Err is set (the substituted value failed validation) or Result
// and Curve are populated. A result with NoCollapse set is a valid point
// whose τ_c is undefined; its curve is the flat V ≡ 1 series.
type Point struct {
	// AxisValue is the substituted value for the sweep axis.
	AxisValue float64

	// Result holds the derived quantities when the evaluation succeeded.
	Result collapse.Result

	// Curve holds the visibility series sampled at the fixed time range.
	Curve collapse.Curve

	// Err records a per-point failure. The rest of the sweep continues.
	Err error
}

// Failed reports whether this point carries a captured evaluation error.
func (p Point) Failed() bool { return p.Err != nil }

// Option configures a Run.
type Option func(*config)

type config struct {
	workers int
}

// WithWorkers fans the sweep out across n goroutines. Each point depends
// only on its own substituted parameters, so evaluation order between
// workers is free; the returned slice is always reassembled in input
// order. n < 2 keeps the default sequential sweep.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// Run sweeps the collapse pipeline over the grid, holding the other two
// parameters of fixed constant. The fixed parameter set is revalidated
// up front; an invalid fixed set fails the whole run. Per-point failures
// are captured on the point, never raised.
//
// On cancellation Run returns the contiguous prefix of completed points
// alongside ctx.Err(); partial results are kept, not discarded.
func Run(ctx context.Context, fixed collapse.Params, g Grid, c collapse.Constants, opts ...Option) ([]Point, error) {
	cfg := config{workers: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Reject an invalid fixed parameter set before any substitution.
	if _, err := collapse.NewParams(fixed.Mass, fixed.Separation, fixed.Lambda, fixed.Times); err != nil {
		return nil, fmt.Errorf("invalid fixed parameters: %w", err)
	}
	if _, err := ParseAxis(string(g.Axis)); err != nil {
		return nil, err
	}

	if cfg.workers > 1 && len(g.Values) > 1 {
		return runParallel(ctx, fixed, g, c, cfg.workers)
	}
	return runSequential(ctx, fixed, g, c)
}

func runSequential(ctx context.Context, fixed collapse.Params, g Grid, c collapse.Constants) ([]Point, error) {
	points := make([]Point, 0, len(g.Values))
	for _, value := range g.Values {
		select {
		case <-ctx.Done():
			return points, ctx.Err()
		default:
		}
		points = append(points, evaluatePoint(fixed, g, value, c))
	}
	return points, nil
}

func runParallel(ctx context.Context, fixed collapse.Params, g Grid, c collapse.Constants, workers int) ([]Point, error) {
	if workers > len(g.Values) {
		workers = len(g.Values)
	}

	points := make([]Point, len(g.Values))
	done := make([]bool, len(g.Values))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					// Each index is owned by exactly one worker.
					points[i] = evaluatePoint(fixed, g, g.Values[i], c)
					done[i] = true
				}
			}
		}()
	}

feed:
	for i := range g.Values {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		// Keep the longest contiguous prefix of completed points so the
		// caller still gets an ordered partial sweep.
		n := 0
		for n < len(done) && done[n] {
			n++
		}
		return points[:n], err
	}
	return points, nil
}

func evaluatePoint(fixed collapse.Params, g Grid, value float64, c collapse.Constants) Point {
	point := Point{AxisValue: value}

	params, err := g.substitute(fixed, value)
	if err != nil {
		point.Err = err
		return point
	}

	result, err := collapse.Evaluate(params, c)
	if err != nil {
		point.Err = err
		return point
	}
	point.Result = result

	curve, err := collapse.Visibility(result.GammaCol, params.Times)
	if err != nil {
		point.Err = err
		return point
	}
	point.Curve = curve
	return point
}
