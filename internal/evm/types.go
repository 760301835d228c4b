package evm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/goodnatureofminers/blockindexer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	RPCClient interface {
		Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error)
	}
	BlockSource interface {
		LatestBlockNumber(ctx context.Context) (uint64, error)
		GetBlock(ctx context.Context, number uint64) (*model.Block, error)
	}
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
