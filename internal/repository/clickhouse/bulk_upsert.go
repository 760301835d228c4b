package clickhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockindexer/internal/model"
)

func insertBlocksQuery(table string) string {
	return fmt.Sprintf(`
INSERT INTO %s (
	number,
	hash,
	parent_hash,
	timestamp,
	transaction_count,
	document,
	indexed_at
) VALUES`, quoteIdent(table))
}

// BulkUpsert inserts docs in one batch. Rows with the same number collapse to the latest
// indexed_at on merge and in FINAL reads. A document that cannot be appended is reported as
// failed; the rest are still sent.
func (r *Repository) BulkUpsert(ctx context.Context, docs []model.IndexedBlock) ([]model.BulkOutcome, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("bulk_upsert", err, start)
	}()

	if len(docs) == 0 {
		return nil, nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBlocksQuery(r.blocksTable))
	if err != nil {
		return nil, fmt.Errorf("prepare blocks batch: %w", err)
	}

	outcomes := make([]model.BulkOutcome, 0, len(docs))
	appended := 0
	for _, doc := range docs {
		payload, marshalErr := json.Marshal(doc)
		if marshalErr != nil {
			outcomes = append(outcomes, model.BulkOutcome{
				Number: doc.Number,
				Err:    fmt.Errorf("%w: encode block %d: %v", model.ErrSerialization, doc.Number, marshalErr),
			})
			continue
		}
		if appendErr := batch.Append(
			doc.Number,
			doc.Hash,
			doc.ParentHash,
			doc.Timestamp,
			doc.TransactionCount,
			string(payload),
			doc.IndexedAt,
		); appendErr != nil {
			outcomes = append(outcomes, model.BulkOutcome{Number: doc.Number, Err: fmt.Errorf("append block %d: %w", doc.Number, appendErr)})
			continue
		}
		outcomes = append(outcomes, model.BulkOutcome{Number: doc.Number})
		appended++
	}

	if appended == 0 {
		_ = batch.Abort()
		return outcomes, nil
	}
	if err = batch.Send(); err != nil {
		return nil, fmt.Errorf("insert blocks: %w", err)
	}
	return outcomes, nil
}
