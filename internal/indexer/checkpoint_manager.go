package indexer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockindexer/internal/model"
	"github.com/goodnatureofminers/blockindexer/internal/pkg/retry"
	"go.uber.org/zap"
)

// CheckpointManager owns the durable cursor. Advance is the only writer of the checkpoint
// record and never moves it below the last value it read or wrote.
type CheckpointManager struct {
	store   DestinationStore
	retrier Retrier
	timeout time.Duration
	now     func() time.Time
	logger  *zap.Logger

	mu    sync.Mutex
	last  uint64
	known bool
}

// NewCheckpointManager builds a CheckpointManager over store.
func NewCheckpointManager(store DestinationStore, retrier Retrier, timeout time.Duration, logger *zap.Logger) *CheckpointManager {
	return &CheckpointManager{
		store:   store,
		retrier: retrier,
		timeout: timeout,
		now:     time.Now,
		logger:  logger,
	}
}

// Read returns the last indexed block and whether a checkpoint exists.
func (m *CheckpointManager) Read(ctx context.Context) (uint64, bool, error) {
	var (
		cp    model.Checkpoint
		found bool
	)
	err := m.retrier.Execute(ctx, func() error {
		callCtx, cancel := withTimeout(ctx, m.timeout)
		defer cancel()

		var err error
		cp, found, err = m.store.GetCheckpoint(callCtx)
		return err
	})
	if err != nil {
		return 0, false, fmt.Errorf("%w: read checkpoint: %w", ErrDestination, err)
	}

	m.mu.Lock()
	m.last, m.known = cp.LastIndexedBlock, found
	m.mu.Unlock()

	if !found {
		return 0, false, nil
	}
	return cp.LastIndexedBlock, true, nil
}

// Advance replaces the checkpoint with to. A conflicting concurrent write is accepted only
// when the stored value already covers to.
func (m *CheckpointManager) Advance(ctx context.Context, to uint64) error {
	m.mu.Lock()
	last, known := m.last, m.known
	m.mu.Unlock()
	if known && to < last {
		return fmt.Errorf("%w: advance to %d below %d", ErrCheckpointRegression, to, last)
	}

	cp := model.Checkpoint{LastIndexedBlock: to, UpdatedAt: m.now().UTC()}
	err := m.retrier.Execute(ctx, func() error {
		callCtx, cancel := withTimeout(ctx, m.timeout)
		defer cancel()

		err := m.store.PutCheckpoint(callCtx, cp)
		if errors.Is(err, model.ErrCheckpointConflict) {
			return retry.Unrecoverable(err)
		}
		return err
	})
	if errors.Is(err, model.ErrCheckpointConflict) {
		stored, found, readErr := m.Read(ctx)
		if readErr == nil && found && stored >= to {
			m.logger.Warn("checkpoint already covered by a concurrent write",
				zap.Uint64("last_indexed_block", stored),
				zap.Uint64("requested", to),
			)
			return nil
		}
		return fmt.Errorf("%w: advance checkpoint to %d: %w", ErrDestination, to, err)
	}
	if err != nil {
		return fmt.Errorf("%w: advance checkpoint to %d: %w", ErrDestination, to, err)
	}

	m.mu.Lock()
	m.last, m.known = to, true
	m.mu.Unlock()

	m.logger.Debug("checkpoint advanced", zap.Uint64("last_indexed_block", to))
	return nil
}

// Reset deletes the checkpoint record so the next run resumes at the configured start block.
func (m *CheckpointManager) Reset(ctx context.Context) error {
	err := m.retrier.Execute(ctx, func() error {
		callCtx, cancel := withTimeout(ctx, m.timeout)
		defer cancel()
		return m.store.DeleteCheckpoint(callCtx)
	})
	if err != nil {
		return fmt.Errorf("%w: reset checkpoint: %w", ErrDestination, err)
	}

	m.mu.Lock()
	m.last, m.known = 0, false
	m.mu.Unlock()

	m.logger.Warn("checkpoint reset")
	return nil
}
