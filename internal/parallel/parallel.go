// Package parallel supplies the blocked-range fork/join primitive the rest
// of the module builds on: chunk a range across a fixed worker count, run
// each chunk concurrently, and block until every chunk is done. It is the
// generalized form of the ad hoc chunking every parallel region in the
// teacher engine used to write out by hand.
package parallel

import "golang.org/x/sync/errgroup"

// For runs fn(i) for every i in [0, n), split into workers contiguous
// chunks dispatched concurrently. It blocks until all chunks complete.
// Workers is clamped to [1, n] so a tiny range never spawns more goroutines
// than it has work for.
func For(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers = clampWorkers(workers, n)

	var g errgroup.Group
	chunkSize := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min((w+1)*chunkSize, n)
		if start >= end {
			continue
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	_ = g.Wait() // fn never errors; For is a pure fork-join region.
}

// Gather is For, but each worker owns a thread-local accumulator of type T
// seeded by newLocal. The per-worker accumulators are returned, in worker
// order, for the caller to merge serially — the merge step is deliberately
// not done here, matching the "final insertion is serial" rule that governs
// every shared structure this module builds under parallel construction.
func Gather[T any](n, workers int, newLocal func() T, fn func(i int, local T)) []T {
	workers = clampWorkers(workers, max(n, 1))
	locals := make([]T, workers)
	for w := range locals {
		locals[w] = newLocal()
	}
	if n <= 0 {
		return locals
	}

	var g errgroup.Group
	chunkSize := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min((w+1)*chunkSize, n)
		if start >= end {
			continue
		}
		local := locals[w]
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i, local)
			}
			return nil
		})
	}
	_ = g.Wait()
	return locals
}

func clampWorkers(workers, n int) int {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	return workers
}
