// Package workerpool provides bounded concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
)

// Process runs at most workerCount concurrent invocations of process over items.
// The first error cancels the shared context, calls onCancel and is returned.
// A canceled parent context yields its error once the workers drain.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	if len(items) == 0 {
		return ctx.Err()
	}
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(items) {
		workerCount = len(items)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make(chan T)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			if onCancel != nil {
				onCancel()
			}
			cancel()
		})
	}

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-tasks:
					if !ok {
						return
					}
					if err := process(ctx, item); err != nil {
						fail(err)
						return
					}
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case tasks <- item:
			}
		}
	}()

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// Collect runs process over keys with bounded concurrency and returns the results keyed by
// their input. Either every key has a result or an error is returned.
func Collect[K comparable, V any](
	ctx context.Context,
	workerCount int,
	keys []K,
	process func(context.Context, K) (V, error),
) (map[K]V, error) {
	var mu sync.Mutex
	results := make(map[K]V, len(keys))

	err := Process(ctx, workerCount, keys, func(ctx context.Context, key K) error {
		value, err := process(ctx, key)
		if err != nil {
			return err
		}
		mu.Lock()
		results[key] = value
		mu.Unlock()
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return results, nil
}
