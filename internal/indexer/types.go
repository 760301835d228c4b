package indexer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockindexer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockSource interface {
		LatestBlockNumber(ctx context.Context) (uint64, error)
		GetBlock(ctx context.Context, number uint64) (*model.Block, error)
	}
	DestinationStore interface {
		BulkUpsert(ctx context.Context, docs []model.IndexedBlock) ([]model.BulkOutcome, error)
		GetCheckpoint(ctx context.Context) (model.Checkpoint, bool, error)
		PutCheckpoint(ctx context.Context, cp model.Checkpoint) error
		DeleteCheckpoint(ctx context.Context) error
	}
	Retrier interface {
		Execute(ctx context.Context, operation func() error) error
	}
	Fetcher interface {
		Fetch(ctx context.Context, r model.Range) (map[uint64]model.IndexedBlock, error)
	}
	Writer interface {
		Write(ctx context.Context, docs []model.IndexedBlock) error
	}
	Checkpointer interface {
		Read(ctx context.Context) (uint64, bool, error)
		Advance(ctx context.Context, to uint64) error
		Reset(ctx context.Context) error
	}
	BatchProcessor interface {
		Process(ctx context.Context, r model.Range) error
	}
	SyncControllerMetrics interface {
		ObservePhase(phase string)
		ObserveBatch(err error, kind string, blocks uint64, started time.Time)
		ObserveChainHeight(height uint64)
		ObserveCheckpoint(block uint64)
	}
	BlockFetcherMetrics interface {
		ObserveFetch(err error, number uint64, started time.Time)
		ObserveRetry(operation string)
	}
	BlockWriterMetrics interface {
		ObserveBulk(err error, documents, failed int, started time.Time)
		ObserveDocumentRetry(documents int)
	}
)
