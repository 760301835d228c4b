package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockindexer",
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Count of destination repository operations.",
	}, []string{"operation", "backend", "status"})
	repositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockindexer",
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of destination repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "backend", "status"})
)

// Repository tracks metrics for destination repository operations.
type Repository struct {
	backend string
}

// NewRepository creates a Repository metrics collector for backend.
func NewRepository(backend string) *Repository {
	if backend == "" {
		backend = "unknown"
	}
	return &Repository{backend: backend}
}

// Observe records duration and status of a repository operation.
func (m Repository) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	repositoryRequestsTotal.WithLabelValues(operation, m.backend, status).Inc()
	repositoryRequestDuration.WithLabelValues(operation, m.backend, status).Observe(time.Since(started).Seconds())
}
