package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockindexer/internal/model"
	"github.com/goodnatureofminers/blockindexer/internal/pkg/retry"
	"github.com/goodnatureofminers/blockindexer/pkg/batcher"
	"go.uber.org/zap"
)

// blockWriter flushes documents in bulk calls of at most bulkSize documents. A whole-call
// failure is retried by retrier; per-document failures are re-sent alone, one round per
// attempt of rounds.
type blockWriter struct {
	store   DestinationStore
	retrier Retrier
	rounds  Retrier
	timeout time.Duration
	metrics BlockWriterMetrics
	logger  *zap.Logger
	batcher *batcher.Batcher[model.IndexedBlock]
}

func newBlockWriter(
	store DestinationStore,
	retrier, rounds Retrier,
	bulkSize, fanOut int,
	timeout time.Duration,
	metrics BlockWriterMetrics,
	logger *zap.Logger,
) *blockWriter {
	w := &blockWriter{
		store:   store,
		retrier: retrier,
		rounds:  rounds,
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
	}
	w.batcher = batcher.New[model.IndexedBlock](logger.Named("bulkBatcher"), w.writeChunk, bulkSize, fanOut, 0)
	return w
}

// Write returns nil only when every document was accepted by the store.
func (w *blockWriter) Write(ctx context.Context, docs []model.IndexedBlock) error {
	if len(docs) == 0 {
		return nil
	}
	return w.batcher.Flush(ctx, docs)
}

func (w *blockWriter) writeChunk(ctx context.Context, docs []model.IndexedBlock) error {
	pending := docs
	attempt := 0
	var callErr error
	err := w.rounds.Execute(ctx, func() error {
		attempt++
		if attempt > 1 {
			w.metrics.ObserveDocumentRetry(len(pending))
		}

		failed, err := w.bulk(ctx, pending)
		if err != nil {
			callErr = err
			return retry.Unrecoverable(err)
		}
		if len(failed) == 0 {
			return nil
		}

		w.logger.Warn("bulk write partially failed",
			zap.Int("failed", len(failed)),
			zap.Int("total", len(pending)),
			zap.Int("attempt", attempt),
			zap.Uint64("first_failed_block", failed[0].Number),
			zap.Error(failed[0].Err),
		)
		rejected := fmt.Errorf("%d of %d documents rejected, block %d: %w",
			len(failed), len(pending), failed[0].Number, failed[0].Err)
		pending = selectFailed(pending, failed)
		return rejected
	})

	switch {
	case err == nil:
		return nil
	case callErr != nil:
		return callErr
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w: after %d attempts: %w", ErrDestination, ErrBulkRetriesExhausted, attempt, err)
	}
}

// bulk sends docs as one call, retrying the call as a unit, and returns the rejected documents.
func (w *blockWriter) bulk(ctx context.Context, docs []model.IndexedBlock) ([]model.BulkOutcome, error) {
	started := time.Now()
	var outcomes []model.BulkOutcome
	err := w.retrier.Execute(ctx, func() error {
		callCtx, cancel := withTimeout(ctx, w.timeout)
		defer cancel()

		out, err := w.store.BulkUpsert(callCtx, docs)
		if err != nil {
			w.logger.Warn("bulk write call failed", zap.Int("documents", len(docs)), zap.Error(err))
			return err
		}
		if err := matchOutcomes(docs, out); err != nil {
			w.logger.Warn("bulk write response rejected", zap.Error(err))
			return err
		}
		outcomes = out
		return nil
	})

	failed := model.FailedOutcomes(outcomes)
	w.metrics.ObserveBulk(err, len(docs), len(failed), started)
	if err != nil {
		return nil, fmt.Errorf("%w: bulk write of %d documents: %w", ErrDestination, len(docs), err)
	}
	return failed, nil
}

// matchOutcomes checks that the store reported exactly one outcome per sent document.
func matchOutcomes(docs []model.IndexedBlock, outcomes []model.BulkOutcome) error {
	if len(outcomes) != len(docs) {
		return fmt.Errorf("bulk response has %d outcomes for %d documents", len(outcomes), len(docs))
	}
	sent := make(map[uint64]bool, len(docs))
	for _, d := range docs {
		sent[d.Number] = false
	}
	for _, o := range outcomes {
		seen, ok := sent[o.Number]
		if !ok {
			return fmt.Errorf("bulk response reports unknown block %d", o.Number)
		}
		if seen {
			return fmt.Errorf("bulk response reports block %d twice", o.Number)
		}
		sent[o.Number] = true
	}
	return nil
}

func selectFailed(docs []model.IndexedBlock, failed []model.BulkOutcome) []model.IndexedBlock {
	numbers := make(map[uint64]struct{}, len(failed))
	for _, o := range failed {
		numbers[o.Number] = struct{}{}
	}
	out := make([]model.IndexedBlock, 0, len(failed))
	for _, d := range docs {
		if _, ok := numbers[d.Number]; ok {
			out = append(out, d)
		}
	}
	return out
}
