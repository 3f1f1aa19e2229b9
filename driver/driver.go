// Package driver runs independent reactor graphs to completion, driving
// each with its own monotonically increasing tick sequence. A graph never
// shares sequence numbers with another; a driver only coordinates when
// multiple graphs start and finish, not what happens between their ticks.
package driver

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/aspenflow/reactor"
)

// Run drives r from sequence 0, committing once per tick, until it
// completes or ctx is cancelled. It returns the last value r evaluated (or
// ErrNoEvaluation if it completed having never evaluated) and the fault
// carried by that value, if any.
func Run[T any](ctx context.Context, r reactor.Reactor[T]) (T, error) {
	var value T
	var hadEvaluation bool

	for sequence := 0; ; sequence++ {
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		default:
		}

		state := r.Commit(sequence)
		if reactor.HasEvaluation(state) {
			v, err := r.Eval()
			if err != nil {
				return v, err
			}
			value = v
			hadEvaluation = true
		}
		if reactor.IsComplete(state) {
			if !hadEvaluation {
				var zero T
				return zero, reactor.ErrNoEvaluation
			}
			return value, nil
		}
	}
}

// RunConcurrent drives every graph in rs to completion concurrently, each
// on its own tick sequence, and returns their final values in the same
// order as rs. If any graph's run returns an error, RunConcurrent cancels
// the rest and returns that error, mirroring the pack's RunConcurrent
// errgroup shape.
func RunConcurrent[T any](ctx context.Context, rs []reactor.Reactor[T]) ([]T, error) {
	if len(rs) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]T, len(rs))
	var mu sync.Mutex

	for i, r := range rs {
		i, r := i, r
		g.Go(func() error {
			v, err := Run(ctx, r)
			if err != nil {
				return fmt.Errorf("graph %d: %w", i, err)
			}
			mu.Lock()
			results[i] = v
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Pipeline drives each stage to completion in turn, feeding stage i's
// final value into stage i+1's build function, mirroring the pack's
// Pipeline: sequential dependency, not concurrency.
func Pipeline[T any](ctx context.Context, initial T, stages []func(T) reactor.Reactor[T]) (T, error) {
	current := initial
	for i, stage := range stages {
		v, err := Run(ctx, stage(current))
		if err != nil {
			return current, fmt.Errorf("stage %d: %w", i, err)
		}
		current = v
	}
	return current, nil
}

// FanOut builds and drives one graph per item in items concurrently via
// build, returning their final values in item order, mirroring the pack's
// FanOut: same graph shape, one fresh instance per item.
func FanOut[I, T any](ctx context.Context, items []I, build func(I) reactor.Reactor[T]) ([]T, error) {
	if len(items) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]T, len(items))
	var mu sync.Mutex

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			v, err := Run(ctx, build(item))
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			mu.Lock()
			results[i] = v
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
