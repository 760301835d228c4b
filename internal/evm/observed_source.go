package evm

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockindexer/internal/model"
)

// ObservedSource records RPC metrics around a BlockSource.
type ObservedSource struct {
	source  BlockSource
	metrics RPCMetrics
}

func NewObservedSource(source BlockSource, metrics RPCMetrics) *ObservedSource {
	return &ObservedSource{
		source:  source,
		metrics: metrics,
	}
}

func (s *ObservedSource) LatestBlockNumber(ctx context.Context) (height uint64, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe(methodBlockNumber, err, started)
	}()
	return s.source.LatestBlockNumber(ctx)
}

func (s *ObservedSource) GetBlock(ctx context.Context, number uint64) (block *model.Block, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe(methodGetBlockByNumber, err, started)
	}()
	return s.source.GetBlock(ctx, number)
}
