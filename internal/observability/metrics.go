package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the report pipeline.
type Metrics struct {
	StormsParsed       prometheus.Counter
	ObservationsParsed prometheus.Counter
	IntegrityWarnings  prometheus.Counter
	ParseFailures      prometheus.Counter
	PipelineRunning    prometheus.Gauge

	// Report generation metrics.
	ReportsGenerated prometheus.Counter
	MatchedStorms    prometheus.Gauge
	ReportDuration   prometheus.Histogram
	SinkErrors       *prometheus.CounterVec // label: sink={file,kafka,postgres}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		StormsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_report",
			Name:      "storms_parsed_total",
			Help:      "Total storm tracks parsed from the dataset.",
		}),
		ObservationsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_report",
			Name:      "observations_parsed_total",
			Help:      "Total best-track observations parsed from the dataset.",
		}),
		IntegrityWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_report",
			Name:      "integrity_warnings_total",
			Help:      "Total observations excluded for data integrity anomalies.",
		}),
		ParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_report",
			Name:      "parse_failures_total",
			Help:      "Total fatal dataset parse failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hurdat2_report",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_report",
			Name:      "reports_generated_total",
			Help:      "Total reports successfully generated and published.",
		}),
		MatchedStorms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hurdat2_report",
			Name:      "matched_storms",
			Help:      "Matched storm count from the most recent report.",
		}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hurdat2_report",
			Name:      "report_duration_seconds",
			Help:      "Duration of a complete extract-aggregate-publish cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hurdat2_report",
			Name:      "sink_errors_total",
			Help:      "Report publish failures by sink.",
		}, []string{"sink"}),
	}

	prometheus.MustRegister(
		m.StormsParsed,
		m.ObservationsParsed,
		m.IntegrityWarnings,
		m.ParseFailures,
		m.PipelineRunning,
		m.ReportsGenerated,
		m.MatchedStorms,
		m.ReportDuration,
		m.SinkErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		StormsParsed:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_report", Name: "storms_parsed_total"}),
		ObservationsParsed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_report", Name: "observations_parsed_total"}),
		IntegrityWarnings:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_report", Name: "integrity_warnings_total"}),
		ParseFailures:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_report", Name: "parse_failures_total"}),
		PipelineRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hurdat2_report", Name: "pipeline_running"}),
		ReportsGenerated:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_report", Name: "reports_generated_total"}),
		MatchedStorms:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hurdat2_report", Name: "matched_storms"}),
		ReportDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "hurdat2_report", Name: "report_duration_seconds"}),
		SinkErrors:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hurdat2_report", Name: "sink_errors_total"}, []string{"sink"}),
	}
}
