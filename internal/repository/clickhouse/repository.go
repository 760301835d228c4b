// Package clickhouse is a Destination Store backed by ClickHouse ReplacingMergeTree tables.
// It assumes a single writer: checkpoint writes are not compare-and-set.
package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/goodnatureofminers/blockindexer/pkg/safe"
)

type Repository struct {
	conn        Conn
	blocksTable string
	metaTable   string
	metrics     Metrics
	now         func() time.Time

	mu          sync.Mutex
	lastVersion uint64
}

func NewRepository(dsn, blocksTable, metaTable string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}
	if blocksTable == "" || metaTable == "" {
		return nil, errors.New("clickhouse table names are required")
	}
	if metrics == nil {
		return nil, errors.New("repository metrics is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return newRepository(conn, blocksTable, metaTable, metrics), nil
}

func newRepository(conn Conn, blocksTable, metaTable string, metrics Metrics) *Repository {
	return &Repository{
		conn:        conn,
		blocksTable: blocksTable,
		metaTable:   metaTable,
		metrics:     metrics,
		now:         time.Now,
	}
}

// Close releases the connection pool.
func (r *Repository) Close() error {
	return r.conn.Close()
}

// Bootstrap creates the blocks and meta tables when they do not exist.
func (r *Repository) Bootstrap(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("bootstrap", err, start)
	}()

	if err = r.conn.Exec(ctx, createBlocksTableQuery(r.blocksTable)); err != nil {
		return fmt.Errorf("create table %s: %w", r.blocksTable, err)
	}
	if err = r.conn.Exec(ctx, createMetaTableQuery(r.metaTable)); err != nil {
		return fmt.Errorf("create table %s: %w", r.metaTable, err)
	}
	return nil
}

func createBlocksTableQuery(table string) string {
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	number UInt64,
	hash String,
	parent_hash String,
	timestamp UInt64,
	transaction_count UInt64,
	document String,
	indexed_at DateTime64(3, 'UTC')
) ENGINE = ReplacingMergeTree(indexed_at)
ORDER BY number`, quoteIdent(table))
}

func createMetaTableQuery(table string) string {
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id String,
	last_indexed_block UInt64,
	updated_at DateTime64(3, 'UTC'),
	deleted UInt8,
	version UInt64
) ENGINE = ReplacingMergeTree(version)
ORDER BY id`, quoteIdent(table))
}

// quoteIdent backtick-quotes a table name; prefixed names contain '-'.
func quoteIdent(name string) string {
	return "`" + name + "`"
}

// nextVersion returns a strictly increasing row version based on the wall clock. A clock
// before the epoch only bumps the previous version.
func (r *Repository) nextVersion() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, err := safe.Uint64(r.now().UnixNano())
	if err != nil || v <= r.lastVersion {
		v = r.lastVersion + 1
	}
	r.lastVersion = v
	return v
}
