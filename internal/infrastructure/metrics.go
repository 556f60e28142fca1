package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments for the ingestion engine
type Metrics struct {
	RowsReceived     *prometheus.CounterVec
	RowsSkipped      *prometheus.CounterVec
	EntitiesInserted *prometheus.CounterVec
	EntitiesMerged   *prometheus.CounterVec
	Findings         prometheus.Counter
	Notifications    prometheus.Counter
	BatchDuration    prometheus.Histogram
}

// NewMetrics registers and returns the engine metrics. Pass
// prometheus.DefaultRegisterer in main, a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RowsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dealpulse_rows_received_total",
			Help: "Raw rows received per source type",
		}, []string{"source"}),
		RowsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dealpulse_rows_skipped_total",
			Help: "Rows skipped due to schema errors per source type",
		}, []string{"source"}),
		EntitiesInserted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dealpulse_entities_inserted_total",
			Help: "Entities inserted per kind",
		}, []string{"kind"}),
		EntitiesMerged: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dealpulse_entities_merged_total",
			Help: "Entities merged into existing records per kind",
		}, []string{"kind"}),
		Findings: factory.NewCounter(prometheus.CounterOpts{
			Name: "dealpulse_redflag_findings_total",
			Help: "Red-flag findings produced",
		}),
		Notifications: factory.NewCounter(prometheus.CounterOpts{
			Name: "dealpulse_notifications_total",
			Help: "Notification events emitted",
		}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dealpulse_batch_duration_seconds",
			Help:    "Wall time of ingestion batches",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
