package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var phases = []string{"starting", "historical", "live", "shutting_down"}

var (
	syncPhase = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockindexer",
		Subsystem: "sync_controller",
		Name:      "phase",
		Help:      "Current controller phase, 1 for the active phase and 0 otherwise.",
	}, []string{"prefix", "phase"})

	syncBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockindexer",
		Subsystem: "sync_controller",
		Name:      "batch_total",
		Help:      "Count of batch attempts.",
	}, []string{"prefix", "status"})

	syncBatchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockindexer",
		Subsystem: "sync_controller",
		Name:      "batch_failures_total",
		Help:      "Count of failed batch attempts by error kind.",
	}, []string{"prefix", "kind"})

	syncBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockindexer",
		Subsystem: "sync_controller",
		Name:      "batch_duration_seconds",
		Help:      "Duration of a batch from fetch to checkpoint commit.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"prefix", "status"})

	syncBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockindexer",
		Subsystem: "sync_controller",
		Name:      "batch_size",
		Help:      "Number of blocks per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"prefix"})

	syncBlocksIndexed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockindexer",
		Subsystem: "sync_controller",
		Name:      "blocks_indexed_total",
		Help:      "Count of blocks committed behind the checkpoint.",
	}, []string{"prefix"})

	syncChainHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockindexer",
		Subsystem: "sync_controller",
		Name:      "chain_height",
		Help:      "Last chain height observed at the Block Source.",
	}, []string{"prefix"})

	syncLastIndexedBlock = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockindexer",
		Subsystem: "sync_controller",
		Name:      "last_indexed_block",
		Help:      "Checkpoint value after the last commit.",
	}, []string{"prefix"})
)

type SyncController struct {
	prefix string
}

func NewSyncController(prefix string) *SyncController {
	if prefix == "" {
		prefix = "unknown"
	}
	return &SyncController{prefix: prefix}
}

func (m SyncController) ObservePhase(phase string) {
	for _, p := range phases {
		value := 0.0
		if p == phase {
			value = 1
		}
		syncPhase.WithLabelValues(m.prefix, p).Set(value)
	}
}

func (m SyncController) ObserveBatch(err error, kind string, blocks uint64, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
		if kind == "" {
			kind = "unknown"
		}
		syncBatchFailures.WithLabelValues(m.prefix, kind).Inc()
	}
	syncBatchTotal.WithLabelValues(m.prefix, status).Inc()
	syncBatchDuration.WithLabelValues(m.prefix, status).Observe(time.Since(started).Seconds())
	syncBatchSize.WithLabelValues(m.prefix).Observe(float64(blocks))
	if err == nil {
		syncBlocksIndexed.WithLabelValues(m.prefix).Add(float64(blocks))
	}
}

func (m SyncController) ObserveChainHeight(height uint64) {
	syncChainHeight.WithLabelValues(m.prefix).Set(float64(height))
}

func (m SyncController) ObserveCheckpoint(block uint64) {
	syncLastIndexedBlock.WithLabelValues(m.prefix).Set(float64(block))
}
