package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockindexer/internal/model"
	"github.com/goodnatureofminers/blockindexer/internal/pkg/retry"
	"github.com/goodnatureofminers/blockindexer/pkg/workerpool"
	"go.uber.org/zap"
)

// blockFetcher is the fetch/transform worker pool. At most concurrency GetBlock calls are in
// flight for one range.
type blockFetcher struct {
	source      BlockSource
	retrier     Retrier
	concurrency int
	timeout     time.Duration
	metrics     BlockFetcherMetrics
	now         func() time.Time
	logger      *zap.Logger
}

func (f *blockFetcher) Fetch(ctx context.Context, r model.Range) (map[uint64]model.IndexedBlock, error) {
	return workerpool.Collect(ctx, f.concurrency, r.Numbers(), f.fetchBlock)
}

func (f *blockFetcher) fetchBlock(ctx context.Context, number uint64) (model.IndexedBlock, error) {
	started := time.Now()
	var (
		doc     model.IndexedBlock
		attempt int
	)
	err := f.retrier.Execute(ctx, func() error {
		attempt++
		if attempt > 1 {
			f.metrics.ObserveRetry("get_block")
		}

		callCtx, cancel := withTimeout(ctx, f.timeout)
		defer cancel()

		block, err := f.source.GetBlock(callCtx, number)
		if err != nil {
			f.logger.Warn("fetch block attempt failed",
				zap.Uint64("block", number),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}

		indexed, err := model.NewIndexedBlock(*block, f.now())
		if err != nil {
			return retry.Unrecoverable(err)
		}
		doc = indexed
		return nil
	})
	f.metrics.ObserveFetch(err, number, started)

	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, model.ErrSerialization):
		f.logger.Error("transform block failed", zap.Uint64("block", number), zap.Error(err))
		return model.IndexedBlock{}, fmt.Errorf("transform block %d: %w", number, err)
	default:
		return model.IndexedBlock{}, fmt.Errorf("%w: fetch block %d: %w", ErrSource, number, err)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
