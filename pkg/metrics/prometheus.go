package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	PagesFetched       prometheus.Counter
	RecordsBuilt       prometheus.Counter
	RecordsPersisted   *prometheus.CounterVec
	CredentialsRemoved prometheus.Counter
	RunDuration        prometheus.Histogram
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		PagesFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "The total number of flight API pages fetched",
		}),
		RecordsBuilt: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_built_total",
			Help:      "The total number of canonical flight records built",
		}),
		RecordsPersisted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_persisted_total",
			Help:      "The total number of flight records persisted",
		}, []string{"mode"}),
		CredentialsRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credentials_removed_total",
			Help:      "The total number of API keys removed after auth failures",
		}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingestion_run_duration_seconds",
			Help:      "Time taken to ingest all configured airports",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
