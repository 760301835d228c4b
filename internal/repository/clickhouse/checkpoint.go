package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockindexer/internal/model"
)

func selectCheckpointQuery(table string) string {
	return fmt.Sprintf(`
SELECT last_indexed_block, updated_at, deleted
FROM %s FINAL
WHERE id = ?
ORDER BY version DESC
LIMIT 1`, quoteIdent(table))
}

func insertCheckpointQuery(table string) string {
	return fmt.Sprintf(`
INSERT INTO %s (id, last_indexed_block, updated_at, deleted, version)
VALUES (?, ?, ?, ?, ?)`, quoteIdent(table))
}

// GetCheckpoint returns the latest checkpoint version unless it is a tombstone.
func (r *Repository) GetCheckpoint(ctx context.Context) (model.Checkpoint, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("get_checkpoint", err, start)
	}()

	rows, err := r.conn.Query(ctx, selectCheckpointQuery(r.metaTable), model.CheckpointID)
	if err != nil {
		return model.Checkpoint{}, false, fmt.Errorf("query checkpoint: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Checkpoint{}, false, fmt.Errorf("iterate checkpoint: %w", err)
		}
		return model.Checkpoint{}, false, nil
	}

	var (
		cp      model.Checkpoint
		deleted uint8
	)
	if err = rows.Scan(&cp.LastIndexedBlock, &cp.UpdatedAt, &deleted); err != nil {
		return model.Checkpoint{}, false, fmt.Errorf("scan checkpoint: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Checkpoint{}, false, fmt.Errorf("iterate checkpoint: %w", err)
	}
	if deleted == 1 {
		return model.Checkpoint{}, false, nil
	}
	return cp, true, nil
}

// PutCheckpoint inserts a newer checkpoint version.
func (r *Repository) PutCheckpoint(ctx context.Context, cp model.Checkpoint) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("put_checkpoint", err, start)
	}()

	err = r.conn.Exec(ctx, insertCheckpointQuery(r.metaTable),
		model.CheckpointID, cp.LastIndexedBlock, cp.UpdatedAt.UTC(), uint8(0), r.nextVersion())
	if err != nil {
		return fmt.Errorf("put checkpoint: %w", err)
	}
	return nil
}

// DeleteCheckpoint inserts a tombstone version.
func (r *Repository) DeleteCheckpoint(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("delete_checkpoint", err, start)
	}()

	err = r.conn.Exec(ctx, insertCheckpointQuery(r.metaTable),
		model.CheckpointID, uint64(0), r.now().UTC(), uint8(1), r.nextVersion())
	if err != nil {
		return fmt.Errorf("delete checkpoint: %w", err)
	}
	return nil
}
