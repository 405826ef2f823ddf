package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "covid_survey"

// Drop reasons used as the "reason" label on RowsDropped.
const (
	DropReasonSentinel = "sentinel"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one analysis run.
type Metrics struct {
	RowsRead        prometheus.Counter
	RowsDropped     *prometheus.CounterVec // labels: reason={sentinel}
	RowsPartitioned *prometheus.CounterVec // labels: partition={pre,post}
	LoadErrors      *prometheus.CounterVec // labels: loader
	PipelineRunning prometheus.Gauge

	BatchSize       prometheus.Histogram
	RunDuration     prometheus.Gauge
	LastRunUnixTime prometheus.Gauge
}

// NewMetrics creates all pipeline metrics and registers them with reg.
// A batch job has no scrape endpoint, so callers pass their own registry and
// write it out with WriteTextfile.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Total survey rows read from the source file.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Survey rows dropped before analysis, by reason.",
		}, []string{"reason"}),
		RowsPartitioned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_partitioned_total",
			Help:      "Analysed rows by side of the vaccine cutoff.",
		}, []string{"partition"}),
		LoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_errors_total",
			Help:      "Report renderer failures by loader.",
		}, []string{"loader"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 while the analysis is running, 0 otherwise.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of rows per batch read from the source file.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100, 250, 500},
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last complete analysis run.",
		}),
		LastRunUnixTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last analysis run finished.",
		}),
	}

	reg.MustRegister(
		m.RowsRead,
		m.RowsDropped,
		m.RowsPartitioned,
		m.LoadErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.RunDuration,
		m.LastRunUnixTime,
	)

	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
