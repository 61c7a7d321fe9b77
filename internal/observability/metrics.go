package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SeedMetrics records what a seed run did. A nil *SeedMetrics is valid and
// records nothing.
type SeedMetrics struct {
	registry *prometheus.Registry

	// RowsCreated counts inserted rows by table.
	RowsCreated *prometheus.CounterVec
	// RowsDeleted counts removed rows by table.
	RowsDeleted *prometheus.CounterVec
	// TableRows is the row count per table after the last successful run.
	TableRows *prometheus.GaugeVec
	// QueryLatency records database call latency by operation and table.
	QueryLatency *prometheus.HistogramVec
	// RunDuration is the wall time of the last run in seconds.
	RunDuration prometheus.Gauge
	// LastSuccess is the unix time of the last successful run.
	LastSuccess prometheus.Gauge
	// RunFailures counts aborted runs.
	RunFailures prometheus.Counter
}

// NewSeedMetrics registers the seed collectors on a dedicated registry.
func NewSeedMetrics() *SeedMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &SeedMetrics{
		registry: reg,
		RowsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alxtravel_seed_rows_created_total",
			Help: "Rows inserted by the seeder by table",
		}, []string{"table"}),
		RowsDeleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alxtravel_seed_rows_deleted_total",
			Help: "Rows removed by the seeder by table",
		}, []string{"table"}),
		TableRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "alxtravel_seed_table_rows",
			Help: "Row count per table after the last successful seed run",
		}, []string{"table"}),
		QueryLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "alxtravel_seed_query_latency_seconds",
			Help:    "Database query latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "table"}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "alxtravel_seed_run_duration_seconds",
			Help: "Wall time of the last seed run",
		}),
		LastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "alxtravel_seed_last_success_timestamp_seconds",
			Help: "Unix time of the last successful seed run",
		}),
		RunFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "alxtravel_seed_run_failures_total",
			Help: "Seed runs aborted by an error",
		}),
	}
}

// Registry exposes the underlying registry for gathering.
func (m *SeedMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *SeedMetrics) TrackQuery(operation, table string) func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.QueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// ObserveCreated counts one inserted row.
func (m *SeedMetrics) ObserveCreated(table string) {
	if m == nil {
		return
	}
	m.RowsCreated.WithLabelValues(table).Inc()
}

// ObserveDeleted counts removed rows.
func (m *SeedMetrics) ObserveDeleted(table string, rows int64) {
	if m == nil {
		return
	}
	m.RowsDeleted.WithLabelValues(table).Add(float64(rows))
}

// ObserveTableRows sets the post-run row count of a table.
func (m *SeedMetrics) ObserveTableRows(table string, rows int64) {
	if m == nil {
		return
	}
	m.TableRows.WithLabelValues(table).Set(float64(rows))
}

// ObserveRun records the outcome of a run that started at start.
func (m *SeedMetrics) ObserveRun(start time.Time, err error) {
	if m == nil {
		return
	}
	m.RunDuration.Set(time.Since(start).Seconds())
	if err != nil {
		m.RunFailures.Inc()
		return
	}
	m.LastSuccess.Set(float64(time.Now().Unix()))
}

// WriteTextfile writes the collected metrics in Prometheus text format to
// path, for pickup by the node_exporter textfile collector.
func (m *SeedMetrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
