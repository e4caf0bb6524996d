// Package concurrency provides the worker pool the BFS driver shards
// parent seeds across when --multithread is set (spec.md §5: "a parallel
// search may shard parents across worker threads; the dedup filter and
// per-thread interpreter scratch structures must then be per-thread,
// joined at length boundaries").
package concurrency

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Shard splits n items across up to workers goroutines and calls fn(i)
// for each index, joining all of them before returning — the "length
// boundary" join spec.md §5 requires. fn is responsible for writing its
// own results somewhere the caller can read after Shard returns (each
// worker in internal/search owns its own dedup filter and interpreter
// Workspace, so there is no shared mutable state to protect here beyond
// what fn captures).
//
// workers <= 1 runs everything on the calling goroutine — the
// single-threaded cooperative default spec.md §5 describes when
// --multithread is not requested.
func Shard(ctx context.Context, n, workers int, fn func(i int) error) error {
	if workers < 1 {
		workers = 1
	}
	if workers == 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	items := make(chan int)

	g.Go(func() error {
		defer close(items)
		for i := 0; i < n; i++ {
			select {
			case items <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range items {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
