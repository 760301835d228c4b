package indexer

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockindexer/internal/model"
	"go.uber.org/zap"
)

// batchCoordinator commits one range: fetch all, write all, then advance the checkpoint to
// the range end. Any failure leaves the checkpoint where it was.
type batchCoordinator struct {
	fetcher     Fetcher
	writer      Writer
	checkpoints Checkpointer
	logger      *zap.Logger
}

func (c *batchCoordinator) Process(ctx context.Context, r model.Range) error {
	if r.Len() == 0 {
		return fmt.Errorf("process batch %s: %w: empty range", r, ErrIncompleteBatch)
	}

	docs, err := c.fetcher.Fetch(ctx, r)
	if err != nil {
		return fmt.Errorf("process batch %s: %w", r, err)
	}

	ordered, err := assemble(r, docs)
	if err != nil {
		return fmt.Errorf("process batch %s: %w", r, err)
	}
	c.logger.Debug("batch fetched", zap.Stringer("range", r), zap.Int("documents", len(ordered)))

	if err := c.writer.Write(ctx, ordered); err != nil {
		return fmt.Errorf("process batch %s: %w", r, err)
	}

	// A batch written after shutdown began is abandoned; re-writing it later is an upsert.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("process batch %s: abandoned before commit: %w", r, err)
	}

	if err := c.checkpoints.Advance(ctx, r.End); err != nil {
		return fmt.Errorf("process batch %s: %w", r, err)
	}
	return nil
}

// assemble orders docs by block number and verifies they cover r exactly.
func assemble(r model.Range, docs map[uint64]model.IndexedBlock) ([]model.IndexedBlock, error) {
	if uint64(len(docs)) != r.Len() {
		return nil, fmt.Errorf("%w: got %d documents for %d blocks", ErrIncompleteBatch, len(docs), r.Len())
	}
	ordered := make([]model.IndexedBlock, 0, len(docs))
	for _, n := range r.Numbers() {
		doc, ok := docs[n]
		if !ok {
			return nil, fmt.Errorf("%w: block %d missing", ErrIncompleteBatch, n)
		}
		if doc.Number != n {
			return nil, fmt.Errorf("%w: document for block %d carries number %d", ErrIncompleteBatch, n, doc.Number)
		}
		ordered = append(ordered, doc)
	}
	return ordered, nil
}
