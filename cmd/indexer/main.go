// Package main runs the block indexer: a historical backfill followed by a live tail from an
// Ethereum JSON-RPC node into Elasticsearch or ClickHouse.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockindexer/internal/config"
	"github.com/goodnatureofminers/blockindexer/internal/evm"
	"github.com/goodnatureofminers/blockindexer/internal/indexer"
	"github.com/goodnatureofminers/blockindexer/internal/metrics"
	"github.com/goodnatureofminers/blockindexer/internal/pkg/transport/jsonrpc"
	"github.com/goodnatureofminers/blockindexer/internal/repository/clickhouse"
	"github.com/goodnatureofminers/blockindexer/internal/repository/elasticsearch"
	"github.com/goodnatureofminers/blockindexer/internal/transport/health"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type destination interface {
	indexer.DestinationStore
	Bootstrap(ctx context.Context) error
}

func main() {
	cfg, err := config.Load(os.Args[1:], ".env")
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("block indexer stopped")
			return
		}
		logger.Fatal("block indexer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	store, closeStore, err := newDestination(cfg)
	if err != nil {
		return fmt.Errorf("init destination: %w", err)
	}
	defer closeStore()

	bootstrapCtx, cancel := context.WithTimeout(ctx, cfg.WriteTimeout)
	err = store.Bootstrap(bootstrapCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("bootstrap %s: %w", cfg.Destination, err)
	}

	rpcClient := jsonrpc.NewClient(cfg.RPCHTTPURL, jsonrpc.WithTimeout(cfg.RPCTimeout))
	var sourceOpts []evm.Option
	if cfg.RPCRateLimit > 0 {
		sourceOpts = append(sourceOpts, evm.WithRateLimit(cfg.RPCRateLimit))
	}
	source := evm.NewObservedSource(
		evm.NewSource(rpcClient, sourceOpts...),
		metrics.NewRPCClient(endpointLabel(cfg.RPCHTTPURL)),
	)

	controller, err := indexer.NewSyncController(
		source,
		store,
		indexer.Options{
			BatchSize:       cfg.BatchSize,
			StartBlock:      cfg.StartBlock,
			SyncInterval:    cfg.SyncInterval(),
			Concurrency:     cfg.Concurrency,
			BulkSize:        cfg.BulkSize,
			BulkConcurrency: cfg.BulkConcurrency,
			ResetCheckpoint: cfg.ResetCheckpoint,
			RPCTimeout:      cfg.RPCTimeout,
			WriteTimeout:    cfg.WriteTimeout,
			RetryAttempts:   cfg.RetryAttempts,
			RetryDelay:      cfg.RetryDelay,
			RetryMaxDelay:   cfg.RetryMaxDelay,
		},
		indexer.Metrics{
			Controller: metrics.NewSyncController(cfg.IndexPrefix),
			Fetcher:    metrics.NewBlockFetcher(cfg.IndexPrefix),
			Writer:     metrics.NewBlockWriter(cfg.Destination),
		},
		logger.Named("syncController"),
	)
	if err != nil {
		return fmt.Errorf("init sync controller: %w", err)
	}

	if cfg.HealthAddr != "" {
		healthServer := health.NewServer(logger)
		controller.OnPhaseChange(healthServer.ObservePhase)

		socket, err := net.Listen("tcp", cfg.HealthAddr)
		if err != nil {
			return fmt.Errorf("listen health addr %s: %w", cfg.HealthAddr, err)
		}
		go func() {
			logger.Info("starting gRPC health server", zap.String("addr", cfg.HealthAddr))
			if serveErr := healthServer.Serve(ctx, socket); serveErr != nil {
				logger.Error("gRPC health server failed", zap.Error(serveErr))
			}
		}()
	}

	logger.Info("starting block indexer",
		zap.String("prefix", cfg.IndexPrefix),
		zap.String("destination", cfg.Destination),
		zap.Uint64("batch_size", cfg.BatchSize),
		zap.Int("concurrency", cfg.Concurrency),
		zap.Int("bulk_size", cfg.BulkSize),
		zap.Uint64("start_block", cfg.StartBlock),
	)
	return controller.Run(ctx)
}

func newDestination(cfg config.Config) (destination, func(), error) {
	switch cfg.Destination {
	case config.DestinationClickHouse:
		repo, err := clickhouse.NewRepository(
			cfg.ClickHouseDSN,
			cfg.BlocksIndex(),
			cfg.MetaIndex(),
			metrics.NewRepository(config.DestinationClickHouse),
		)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		var caCert []byte
		if cfg.ESCACert != "" {
			pem, err := os.ReadFile(cfg.ESCACert)
			if err != nil {
				return nil, nil, fmt.Errorf("read ca cert: %w", err)
			}
			caCert = pem
		}
		repo, err := elasticsearch.NewRepository(elasticsearch.Config{
			URL:         cfg.ESURL,
			Username:    cfg.ESUsername,
			Password:    cfg.ESPassword,
			CACert:      caCert,
			BlocksIndex: cfg.BlocksIndex(),
			MetaIndex:   cfg.MetaIndex(),
		}, metrics.NewRepository(config.DestinationElasticsearch))
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}
}

func newLogger(level, format string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewDevelopmentConfig()
	if format == "json" {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = atomicLevel
	return zapCfg.Build()
}

// endpointLabel keeps credentials and paths out of metric labels.
func endpointLabel(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "unknown"
	}
	return parsed.Host
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
