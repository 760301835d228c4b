// Package config holds the process configuration snapshot. It is parsed once at startup from
// flags, the environment and an optional .env file, validated, and read-only afterwards.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/goodnatureofminers/blockindexer/internal/pkg/validator"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig wraps every parse or validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const (
	DestinationElasticsearch = "elasticsearch"
	DestinationClickHouse    = "clickhouse"
)

type Config struct {
	RPCHTTPURL string `long:"rpc-http-url" env:"RPC_HTTP_URL" description:"block source JSON-RPC endpoint" validate:"required,url"`

	Destination   string `long:"destination" env:"DESTINATION" description:"destination store backend" default:"elasticsearch" validate:"oneof=elasticsearch clickhouse"`
	ESURL         string `long:"es-url" env:"ES_URL" description:"elasticsearch endpoint" validate:"required_if=Destination elasticsearch,omitempty,url"`
	ESUsername    string `long:"es-username" env:"ES_USERNAME" description:"elasticsearch basic auth user" validate:"required_with=ESPassword"`
	ESPassword    string `long:"es-password" env:"ES_PASSWORD" description:"elasticsearch basic auth password" validate:"required_with=ESUsername"`
	ESCACert      string `long:"es-ca-cert" env:"ES_CA_CERT" description:"PEM file used to verify the elasticsearch certificate" validate:"omitempty,file"`
	ClickHouseDSN string `long:"clickhouse-dsn" env:"CLICKHOUSE_DSN" description:"clickhouse dsn" validate:"required_if=Destination clickhouse"`
	IndexPrefix   string `long:"index-prefix" env:"INDEX_PREFIX" description:"prefix of the blocks and meta namespaces" default:"workqueue" validate:"required,lowercase,excludesall=/\\*?\"<>0x7C #0x2C:"`

	BatchSize        uint64 `long:"batch-size" env:"BATCH_SIZE" description:"max blocks per commit unit" default:"1000" validate:"min=1"`
	StartBlock       uint64 `long:"start-block" env:"START_BLOCK" description:"resume point when no checkpoint exists" default:"0"`
	SyncIntervalSecs uint   `long:"sync-interval-secs" env:"SYNC_INTERVAL_SECS" description:"live poll period in seconds" default:"2" validate:"min=1"`
	Concurrency      int    `long:"concurrency" env:"CONCURRENCY" description:"fetch worker pool size" default:"10" validate:"min=1"`
	BulkSize         int    `long:"es-bulk-size" env:"ES_BULK_SIZE" description:"max documents per bulk call" default:"100" validate:"min=1"`
	BulkConcurrency  int    `long:"bulk-concurrency" env:"BULK_CONCURRENCY" description:"concurrent bulk calls per batch" default:"2" validate:"min=1"`
	ResetCheckpoint  bool   `long:"reset-checkpoint" env:"RESET_CHECKPOINT" description:"delete the stored checkpoint and resume at start-block"`

	RPCTimeout    time.Duration `long:"rpc-timeout" env:"RPC_TIMEOUT" description:"per-call timeout of block source calls" default:"10s" validate:"min=1ms"`
	RPCRateLimit  int           `long:"rpc-rate-limit" env:"RPC_RATE_LIMIT" description:"max block source calls per second, 0 is unlimited" default:"0" validate:"min=0"`
	WriteTimeout  time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" description:"per-call timeout of destination calls" default:"30s" validate:"min=1ms"`
	RetryAttempts uint          `long:"retry-attempts" env:"RETRY_ATTEMPTS" description:"attempts per fetch, bulk call and height query" default:"5" validate:"min=1"`
	RetryDelay    time.Duration `long:"retry-delay" env:"RETRY_DELAY" description:"base retry backoff" default:"500ms" validate:"min=1ms"`
	RetryMaxDelay time.Duration `long:"retry-max-delay" env:"RETRY_MAX_DELAY" description:"retry backoff cap" default:"10s" validate:"gtefield=RetryDelay"`

	MetricsAddr string `long:"metrics-addr" env:"METRICS_ADDR" description:"prometheus listen address" default:":2112" validate:"required"`
	HealthAddr  string `long:"health-addr" env:"HEALTH_ADDR" description:"gRPC health listen address, empty disables" default:":9090"`
	LogLevel    string `long:"log-level" env:"LOG_LEVEL" description:"log level" default:"info" validate:"oneof=debug info warn error"`
	LogFormat   string `long:"log-format" env:"LOG_FORMAT" description:"log encoding" default:"console" validate:"oneof=console json"`
}

// Load reads envFiles into the environment without overriding variables that are already
// set, parses args and validates the result. Missing env files are ignored.
func Load(args []string, envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: load %s: %w", ErrInvalidConfig, file, err)
		}
	}

	var cfg Config
	if _, err := flags.ParseArgs(&cfg, args); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.Validate(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// BlocksIndex is the block document namespace, `{prefix}-blocks`.
func (c Config) BlocksIndex() string {
	return c.IndexPrefix + "-blocks"
}

// MetaIndex is the checkpoint namespace, `{prefix}-meta`.
func (c Config) MetaIndex() string {
	return c.IndexPrefix + "-meta"
}

func (c Config) SyncInterval() time.Duration {
	return time.Duration(c.SyncIntervalSecs) * time.Second
}
