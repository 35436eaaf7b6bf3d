package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	SnapshotsComputedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_snapshots_computed_total",
		Help: "Total number of analytics snapshots computed.",
	})

	SnapshotDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fleet_snapshot_seconds",
		Help:    "Time spent computing one analytics snapshot.",
		Buckets: prometheus.DefBuckets,
	})

	RecordsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_records_dropped_total",
		Help: "Total number of maintenance records excluded for implausible dates.",
	})

	RecordChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_record_changes_total",
		Help: "Total number of record change events observed, by collection.",
	}, []string{"collection"})
)
