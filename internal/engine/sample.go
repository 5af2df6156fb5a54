package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Sample resolves frames [from, to) using a pool of workers. Results are
// stored by index, so the returned slice is in ascending frame order however
// the workers are scheduled.
func Sample(ctx context.Context, plan *Plan, from, to, workers int) ([]Frame, error) {
	return SampleEvery(ctx, plan, from, to, 1, workers)
}

// SampleEvery is Sample restricted to every step-th frame of [from, to),
// starting at from. Skipped frames are never resolved.
func SampleEvery(ctx context.Context, plan *Plan, from, to, step, workers int) ([]Frame, error) {
	if plan == nil {
		return nil, fmt.Errorf("sample: nil plan")
	}
	if to < from {
		return nil, fmt.Errorf("sample: invalid frame range [%d,%d)", from, to)
	}
	if step < 1 {
		return nil, fmt.Errorf("sample: invalid step %d", step)
	}
	count := (to - from + step - 1) / step
	if count == 0 {
		return []Frame{}, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > count {
		workers = count
	}

	results := make([]Frame, count)
	jobs := make(chan int, count)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = Resolve(plan, from+i*step)
			}
			return nil
		})
	}

	for i := 0; i < count; i++ {
		jobs <- i
	}
	close(jobs)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
