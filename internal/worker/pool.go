package worker

import (
	"context"
	"sync"
)

// Task holds the outcome of processing one input.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
}

// ProcessFunc processes a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool runs independent inputs through a fixed number of goroutines.
// Results come back in input order, so callers that must consume them
// sequentially (like manifest-ordered ingestion) still can.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a pool with the given concurrency.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{workers: workers, process: fn}
}

// Execute runs all inputs and returns one task per input, in input order.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Task[T, R] {
	results := make([]Task[T, R], len(inputs))
	indexCh := make(chan int, len(inputs))

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-indexCh:
					if !ok {
						return
					}
					result, err := p.process(ctx, inputs[idx])
					results[idx] = Task[T, R]{Input: inputs[idx], Result: result, Err: err}
				}
			}
		}()
	}

	for i := range inputs {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	// Workers bail out on cancellation, leaving unclaimed indexes in the
	// channel. Stamp those tasks so they cannot pass for successes.
	for idx := range indexCh {
		results[idx] = Task[T, R]{Input: inputs[idx], Err: ctx.Err()}
	}

	return results
}

// Batch splits items into slices of at most batchSize.
func Batch[T any](items []T, batchSize int) [][]T {
	if batchSize <= 0 {
		batchSize = 1
	}
	var batches [][]T
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}
	return batches
}
