package indexer

import "time"

const (
	defaultBatchSize       = 1000
	defaultConcurrency     = 10
	defaultBulkSize        = 100
	defaultBulkConcurrency = 2
	defaultSyncInterval    = 2 * time.Second

	defaultRPCTimeout    = 10 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultRetryAttempts = 5
	defaultRetryDelay    = 500 * time.Millisecond
	defaultRetryMaxDelay = 10 * time.Second

	maxBatchBackoff = time.Minute
)
