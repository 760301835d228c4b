package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockindexer",
		Subsystem: "block_fetcher",
		Name:      "fetch_total",
		Help:      "Count of fetch+transform units.",
	}, []string{"prefix", "status"})

	fetchBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockindexer",
		Subsystem: "block_fetcher",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of a fetch+transform unit including retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"prefix", "status"})

	fetchRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockindexer",
		Subsystem: "block_fetcher",
		Name:      "retries_total",
		Help:      "Count of retried Block Source calls.",
	}, []string{"prefix", "operation"})
)

// BlockFetcher tracks metrics for the fetch/transform worker pool.
type BlockFetcher struct {
	prefix string
}

// NewBlockFetcher constructs a BlockFetcher collector.
func NewBlockFetcher(prefix string) *BlockFetcher {
	if prefix == "" {
		prefix = "unknown"
	}
	return &BlockFetcher{prefix: prefix}
}

func (m BlockFetcher) ObserveFetch(err error, _ uint64, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	fetchBlockTotal.WithLabelValues(m.prefix, status).Inc()
	fetchBlockDuration.WithLabelValues(m.prefix, status).Observe(time.Since(started).Seconds())
}

func (m BlockFetcher) ObserveRetry(operation string) {
	fetchRetries.WithLabelValues(m.prefix, operation).Inc()
}
