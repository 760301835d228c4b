// Package evm reads blocks from Ethereum-compatible nodes over JSON-RPC.
package evm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/blockindexer/internal/model"
	"go.uber.org/ratelimit"
)

// ErrBlockNotFound is returned when the node has no block at the requested number yet.
var ErrBlockNotFound = errors.New("block not found")

const (
	methodBlockNumber      = "eth_blockNumber"
	methodGetBlockByNumber = "eth_getBlockByNumber"
)

// Source implements the Block Source on top of a JSON-RPC client.
type Source struct {
	client  RPCClient
	limiter ratelimit.Limiter
}

// Option customizes a Source.
type Option func(*Source)

// WithRateLimit bounds the number of RPC calls per second. rps <= 0 keeps calls unlimited.
func WithRateLimit(rps int) Option {
	return func(s *Source) {
		if rps > 0 {
			s.limiter = ratelimit.New(rps)
		}
	}
}

// NewSource builds a Source.
func NewSource(client RPCClient, opts ...Option) *Source {
	s := &Source{client: client, limiter: ratelimit.NewUnlimited()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LatestBlockNumber returns the current chain height.
func (s *Source) LatestBlockNumber(ctx context.Context) (uint64, error) {
	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	raw, err := s.client.Fetch(ctx, methodBlockNumber)
	if err != nil {
		return 0, err
	}

	var height hexutil.Uint64
	if err := json.Unmarshal(raw, &height); err != nil {
		return 0, fmt.Errorf("decode block number: %w", err)
	}
	return uint64(height), nil
}

// GetBlock returns the block at number with full transaction objects.
func (s *Source) GetBlock(ctx context.Context, number uint64) (*model.Block, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	raw, err := s.client.Fetch(ctx, methodGetBlockByNumber, hexutil.Uint64(number), true)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("%w: %d", ErrBlockNotFound, number)
	}

	var resp blockResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode block %d: %w", number, err)
	}
	if resp.Number == nil {
		return nil, fmt.Errorf("%w: %d is pending", ErrBlockNotFound, number)
	}
	if uint64(*resp.Number) != number {
		return nil, fmt.Errorf("node returned block %d for %d", uint64(*resp.Number), number)
	}
	return resp.toModel(number), nil
}

// wait takes a rate limit slot. Take cannot be interrupted, so a context that ended while
// blocked fails the call before it reaches the node.
func (s *Source) wait(ctx context.Context) error {
	s.limiter.Take()
	return ctx.Err()
}
