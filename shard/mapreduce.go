package shard

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"onlinestats/regression"
	"onlinestats/stats"
)

var ErrLengthMismatch = errors.New("shard: inputs differ in length")

// cancellation is polled once per this many items
const checkEvery = 1024

// MapReduce splits the indices [0, n) into contiguous ranges, feeds each range
// into a private accumulator on its own goroutine and reduces the partials.
// The first error, including context cancellation, aborts the run.
func MapReduce[T Mergeable[T]](
	ctx context.Context,
	workers int,
	n int,
	newAcc func() T,
	push func(acc T, i int)) (T, error) {

	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if n == 0 {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		return newAcc(), nil
	}

	partials := make([]T, workers)
	chunk := (n + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			acc := newAcc()
			for i := lo; i < hi; i++ {
				if (i-lo)%checkEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				push(acc, i)
			}
			partials[w] = acc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var zero T
		return zero, err
	}
	return Reduce(newAcc, partials), nil
}

// Stats computes the moments of xs across opts.Workers goroutines.
func Stats(ctx context.Context, opts Options, xs []float64) (*stats.RunningStats, error) {
	return MapReduce(ctx, opts.Workers, len(xs), stats.NewRunningStats,
		func(acc *stats.RunningStats, i int) {
			acc.Push(xs[i])
		})
}

// Regression fits a line through (xs[i], ys[i]) across opts.Workers
// goroutines.
func Regression(
	ctx context.Context,
	opts Options,
	xs, ys []float64) (*regression.RunningRegression, error) {

	if len(xs) != len(ys) {
		return nil, ErrLengthMismatch
	}
	return MapReduce(ctx, opts.Workers, len(xs), regression.NewRunningRegression,
		func(acc *regression.RunningRegression, i int) {
			acc.Push(xs[i], ys[i])
		})
}
