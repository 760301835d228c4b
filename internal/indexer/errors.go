package indexer

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/blockindexer/internal/model"
)

var (
	// ErrSource marks a Block Source failure that outlived its retries.
	ErrSource = errors.New("source error")
	// ErrDestination marks a Destination Store failure that outlived its retries.
	ErrDestination = errors.New("destination error")
	// ErrIncompleteBatch is returned when fetched documents do not cover the requested range exactly.
	ErrIncompleteBatch = errors.New("incomplete batch")
	// ErrBulkRetriesExhausted is returned when some documents are still rejected after the
	// last per-document attempt.
	ErrBulkRetriesExhausted = errors.New("bulk retries exhausted")
	// ErrCheckpointRegression is returned when an advance would move the checkpoint backwards.
	ErrCheckpointRegression = errors.New("checkpoint regression")
)

const (
	KindSource        = "source"
	KindDestination   = "destination"
	KindSerialization = "serialization"
	KindIncomplete    = "incomplete"
	KindCanceled      = "canceled"
	KindUnknown       = "unknown"
)

// ErrorKind classifies err for logs and metric labels. It returns "" for nil.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrSerialization):
		return KindSerialization
	case errors.Is(err, ErrIncompleteBatch):
		return KindIncomplete
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrSource):
		return KindSource
	case errors.Is(err, ErrDestination), errors.Is(err, ErrBulkRetriesExhausted), errors.Is(err, ErrCheckpointRegression):
		return KindDestination
	default:
		return KindUnknown
	}
}
