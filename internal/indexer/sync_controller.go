package indexer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/blockindexer/internal/clock"
	"github.com/goodnatureofminers/blockindexer/internal/model"
	"github.com/goodnatureofminers/blockindexer/internal/pkg/retry"
	"go.uber.org/zap"
)

// Options tunes the sync engine. Zero values fall back to defaults.
type Options struct {
	BatchSize       uint64
	StartBlock      uint64
	SyncInterval    time.Duration
	Concurrency     int
	BulkSize        int
	BulkConcurrency int
	ResetCheckpoint bool

	RPCTimeout    time.Duration
	WriteTimeout  time.Duration
	RetryAttempts uint
	RetryDelay    time.Duration
	RetryMaxDelay time.Duration
}

// Metrics groups the collectors of the engine components.
type Metrics struct {
	Controller SyncControllerMetrics
	Fetcher    BlockFetcherMetrics
	Writer     BlockWriterMetrics
}

// SyncController drives the Starting, Historical, Live and ShuttingDown phases. Batches run
// one at a time; the resume point always equals the checkpoint plus one between batches.
type SyncController struct {
	source        BlockSource
	checkpoints   Checkpointer
	batches       BatchProcessor
	heightRetrier Retrier
	batchRetrier  Retrier
	metrics       SyncControllerMetrics
	logger        *zap.Logger

	batchSize       uint64
	startBlock      uint64
	interval        time.Duration
	rpcTimeout      time.Duration
	resetCheckpoint bool
	sleep           func(context.Context, time.Duration) error
	now             func() time.Time

	phase atomic.Int32
	mu    sync.Mutex
	hooks []func(from, to Phase)
}

// NewSyncController wires the checkpoint manager, batch coordinator, fetch pool and bulk
// writer over source and store.
func NewSyncController(
	source BlockSource,
	store DestinationStore,
	opts Options,
	metrics Metrics,
	logger *zap.Logger,
) (*SyncController, error) {
	if source == nil {
		return nil, errors.New("block source is required")
	}
	if store == nil {
		return nil, errors.New("destination store is required")
	}
	if metrics.Controller == nil || metrics.Fetcher == nil || metrics.Writer == nil {
		return nil, errors.New("sync controller metrics are required")
	}
	opts = opts.withDefaults()

	newRetrier := func() *retry.Retrier {
		return retry.New(
			retry.WithAttempts(opts.RetryAttempts),
			retry.WithDelay(opts.RetryDelay),
			retry.WithMaxDelay(opts.RetryMaxDelay),
		)
	}

	checkpoints := NewCheckpointManager(store, newRetrier(), opts.WriteTimeout, logger.Named("checkpointManager"))
	coordinator := &batchCoordinator{
		fetcher: &blockFetcher{
			source:      source,
			retrier:     newRetrier(),
			concurrency: opts.Concurrency,
			timeout:     opts.RPCTimeout,
			metrics:     metrics.Fetcher,
			now:         time.Now,
			logger:      logger.Named("blockFetcher"),
		},
		writer: newBlockWriter(
			store,
			newRetrier(),
			newRetrier(),
			opts.BulkSize,
			opts.BulkConcurrency,
			opts.WriteTimeout,
			metrics.Writer,
			logger.Named("blockWriter"),
		),
		checkpoints: checkpoints,
		logger:      logger.Named("batchCoordinator"),
	}

	batchRetrier := retry.New(
		retry.WithUnlimitedAttempts(),
		retry.WithDelay(opts.RetryDelay),
		retry.WithMaxDelay(maxBatchBackoff),
	)

	return &SyncController{
		source:          source,
		checkpoints:     checkpoints,
		batches:         coordinator,
		heightRetrier:   newRetrier(),
		batchRetrier:    batchRetrier,
		metrics:         metrics.Controller,
		logger:          logger,
		batchSize:       opts.BatchSize,
		startBlock:      opts.StartBlock,
		interval:        opts.SyncInterval,
		rpcTimeout:      opts.RPCTimeout,
		resetCheckpoint: opts.ResetCheckpoint,
		sleep:           clock.SleepWithContext,
		now:             time.Now,
	}, nil
}

func (o Options) withDefaults() Options {
	if o.BatchSize == 0 {
		o.BatchSize = defaultBatchSize
	}
	if o.SyncInterval <= 0 {
		o.SyncInterval = defaultSyncInterval
	}
	if o.Concurrency < 1 {
		o.Concurrency = defaultConcurrency
	}
	if o.BulkSize < 1 {
		o.BulkSize = defaultBulkSize
	}
	if o.BulkConcurrency < 1 {
		o.BulkConcurrency = defaultBulkConcurrency
	}
	if o.RPCTimeout <= 0 {
		o.RPCTimeout = defaultRPCTimeout
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = defaultWriteTimeout
	}
	if o.RetryAttempts == 0 {
		o.RetryAttempts = defaultRetryAttempts
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = defaultRetryDelay
	}
	if o.RetryMaxDelay <= 0 {
		o.RetryMaxDelay = defaultRetryMaxDelay
	}
	return o
}

// Phase returns the current phase.
func (s *SyncController) Phase() Phase {
	return Phase(s.phase.Load())
}

// OnPhaseChange registers fn to be called after every phase transition.
func (s *SyncController) OnPhaseChange(fn func(from, to Phase)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Run syncs until ctx is canceled or startup fails. Cancellation returns ctx.Err().
func (s *SyncController) Run(ctx context.Context) error {
	defer s.transition(PhaseShuttingDown)

	s.metrics.ObservePhase(PhaseStarting.String())
	resume, height, err := s.start(ctx)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	s.transition(PhaseHistorical, zap.Uint64("resume", resume), zap.Uint64("height", height))
	resume, err = s.historical(ctx, resume, height)
	if err != nil {
		return err
	}

	s.transition(PhaseLive, zap.Uint64("resume", resume))
	return s.live(ctx, resume)
}

func (s *SyncController) start(ctx context.Context) (uint64, uint64, error) {
	if s.resetCheckpoint {
		if err := s.checkpoints.Reset(ctx); err != nil {
			return 0, 0, err
		}
	}

	last, found, err := s.checkpoints.Read(ctx)
	if err != nil {
		return 0, 0, err
	}
	resume := s.startBlock
	if found {
		resume = max(last+1, s.startBlock)
		s.metrics.ObserveCheckpoint(last)
	}

	height, err := s.latestHeight(ctx)
	if err != nil {
		return 0, 0, err
	}

	s.logger.Info("resume point resolved",
		zap.Bool("checkpoint_found", found),
		zap.Uint64("last_indexed_block", last),
		zap.Uint64("resume", resume),
		zap.Uint64("height", height),
	)
	return resume, height, nil
}

// historical commits windows up to height, then re-checks the chain. It returns the resume
// point once the chain has nothing beyond it.
func (s *SyncController) historical(ctx context.Context, resume, height uint64) (uint64, error) {
	progress := newSyncProgress(resume, height, s.now())
	for {
		for resume <= height {
			r := model.NewRange(resume, height, s.batchSize)
			if err := s.processWithBackoff(ctx, r); err != nil {
				return resume, err
			}
			resume = r.End + 1

			progress.advance(r.Len())
			s.logger.Info("historical sync progress", progress.fields(s.now())...)
		}

		latest, err := s.latestHeight(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return resume, ctx.Err()
			}
			s.logger.Warn("height re-check failed; switching to live", zap.Error(err))
			return resume, nil
		}
		if latest < resume {
			return resume, nil
		}
		s.logger.Info("chain advanced during historical sync",
			zap.Uint64("previous_height", height),
			zap.Uint64("height", latest),
		)
		progress.extend(latest - height)
		height = latest
	}
}

// live polls the chain every interval and commits at most one window per tick.
func (s *SyncController) live(ctx context.Context, resume uint64) error {
	for {
		if err := s.sleep(ctx, s.interval); err != nil {
			return err
		}

		height, err := s.latestHeight(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("poll chain height failed", zap.Error(err))
			continue
		}
		if height < resume {
			continue
		}

		r := model.NewRange(resume, height, s.batchSize)
		if err := s.processWithBackoff(ctx, r); err != nil {
			return err
		}
		resume = r.End + 1
	}
}

// processWithBackoff repeats r until it commits. Only cancellation ends it early.
func (s *SyncController) processWithBackoff(ctx context.Context, r model.Range) error {
	attempt := 0
	err := s.batchRetrier.Execute(ctx, func() error {
		attempt++
		err := s.processBatch(ctx, r)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return retry.Unrecoverable(ctx.Err())
		}

		s.logger.Error("batch failed; retrying same range",
			zap.Stringer("range", r),
			zap.String("kind", ErrorKind(err)),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return err
	})
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (s *SyncController) processBatch(ctx context.Context, r model.Range) error {
	started := time.Now()
	s.logger.Debug("batch started", zap.Uint64("start", r.Start), zap.Uint64("end", r.End))

	err := s.batches.Process(ctx, r)
	s.metrics.ObserveBatch(err, ErrorKind(err), r.Len(), started)
	if err != nil {
		return err
	}
	s.metrics.ObserveCheckpoint(r.End)

	elapsed := time.Since(started)
	s.logger.Info("batch committed",
		zap.Uint64("start", r.Start),
		zap.Uint64("end", r.End),
		zap.Uint64("blocks", r.Len()),
		zap.Duration("duration", elapsed),
		zap.Float64("blocks_per_second", throughput(r.Len(), elapsed)),
	)
	return nil
}

func (s *SyncController) latestHeight(ctx context.Context) (uint64, error) {
	var height uint64
	err := s.heightRetrier.Execute(ctx, func() error {
		callCtx, cancel := withTimeout(ctx, s.rpcTimeout)
		defer cancel()

		h, err := s.source.LatestBlockNumber(callCtx)
		if err != nil {
			return err
		}
		height = h
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: latest block number: %w", ErrSource, err)
	}
	s.metrics.ObserveChainHeight(height)
	return height, nil
}

func (s *SyncController) transition(to Phase, fields ...zap.Field) {
	from := s.Phase()
	if !CanTransition(from, to) {
		if from != to {
			s.logger.Error("invalid phase transition", zap.Stringer("from", from), zap.Stringer("to", to))
		}
		return
	}
	s.phase.Store(int32(to))
	s.metrics.ObservePhase(to.String())
	s.logger.Info("phase transition", append([]zap.Field{zap.Stringer("from", from), zap.Stringer("to", to)}, fields...)...)

	s.mu.Lock()
	hooks := append([]func(from, to Phase){}, s.hooks...)
	s.mu.Unlock()
	for _, hook := range hooks {
		hook(from, to)
	}
}

func throughput(blocks uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(blocks) / elapsed.Seconds()
}
