package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	writerBulkTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockindexer",
		Subsystem: "block_writer",
		Name:      "bulk_total",
		Help:      "Count of bulk write rounds.",
	}, []string{"destination", "status"})

	writerBulkDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockindexer",
		Subsystem: "block_writer",
		Name:      "bulk_duration_seconds",
		Help:      "Duration of a bulk write round including whole-call retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"destination", "status"})

	writerDocuments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockindexer",
		Subsystem: "block_writer",
		Name:      "documents_total",
		Help:      "Count of documents sent, by per-document outcome.",
	}, []string{"destination", "outcome"})

	writerDocumentRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockindexer",
		Subsystem: "block_writer",
		Name:      "document_retries_total",
		Help:      "Count of documents re-sent after a partial bulk failure.",
	}, []string{"destination"})
)

// BlockWriter tracks metrics for destination bulk writes.
type BlockWriter struct {
	destination string
}

// NewBlockWriter constructs a BlockWriter collector.
func NewBlockWriter(destination string) *BlockWriter {
	if destination == "" {
		destination = "unknown"
	}
	return &BlockWriter{destination: destination}
}

// ObserveBulk records one bulk round. failed counts per-document failures of a call that
// otherwise succeeded.
func (m BlockWriter) ObserveBulk(err error, documents, failed int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	} else if failed > 0 {
		status = "partial"
	}
	writerBulkTotal.WithLabelValues(m.destination, status).Inc()
	writerBulkDuration.WithLabelValues(m.destination, status).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	writerDocuments.WithLabelValues(m.destination, "accepted").Add(float64(documents - failed))
	writerDocuments.WithLabelValues(m.destination, "failed").Add(float64(failed))
}

func (m BlockWriter) ObserveDocumentRetry(documents int) {
	writerDocumentRetries.WithLabelValues(m.destination).Add(float64(documents))
}
