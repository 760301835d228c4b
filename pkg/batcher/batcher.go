// Package batcher splits item sets into bounded chunks and flushes them with a small fan-out
// and an optional rate limit.
package batcher

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockindexer/pkg/workerpool"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Batcher flushes item sets in chunks of at most flushSize items.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	flushSize     int
	workers       int
	rl            ratelimit.Limiter
	logger        *zap.Logger
}

// New constructs a Batcher. workers bounds concurrent flushes; rps <= 0 disables the limiter.
func New[T any](logger *zap.Logger, flushCallback func(context.Context, []T) error, flushSize, workers, rps int) *Batcher[T] {
	if flushSize < 1 {
		flushSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	rl := ratelimit.NewUnlimited()
	if rps > 0 {
		rl = ratelimit.New(rps)
	}
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		flushSize:     flushSize,
		workers:       workers,
		rl:            rl,
	}
}

// Flush sends every item through flushCallback. It returns only after all chunks were
// flushed successfully or the first failure stopped the remaining ones.
func (b *Batcher[T]) Flush(ctx context.Context, items []T) error {
	chunks := Chunk(items, b.flushSize)
	if len(chunks) == 0 {
		return nil
	}

	return workerpool.Process(ctx, b.workers, chunks, func(ctx context.Context, chunk []T) error {
		b.rl.Take()
		if err := b.flushCallback(ctx, chunk); err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(chunk)), zap.Error(err))
			return fmt.Errorf("flush %d items: %w", len(chunk), err)
		}
		b.logger.Debug("batch flushed", zap.Int("size", len(chunk)))
		return nil
	}, nil)
}

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}
