package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "launch_dash"

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	handlerDuration *prometheus.HistogramVec
	handlerErrors   *prometheus.CounterVec
	chartRenders    *prometheus.CounterVec
	tableRows       prometheus.Gauge
}

// New creates a dedicated registry with the dashboard collectors plus the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handler_duration_seconds",
			Help:      "Time spent filtering the launch table and building a chart description.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"output"}),
		handlerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_errors_total",
			Help:      "Chart handler invocations that returned an error.",
		}, []string{"output"}),
		chartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_renders_total",
			Help:      "Chart images rendered, by output and image format.",
		}, []string{"output", "format"}),
		tableRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_rows",
			Help:      "Number of launch records loaded at startup.",
		}),
	}

	reg.MustRegister(
		m.handlerDuration,
		m.handlerErrors,
		m.chartRenders,
		m.tableRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveHandler records one handler invocation. Safe on a nil receiver.
func (m *Metrics) ObserveHandler(output string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.handlerDuration.WithLabelValues(output).Observe(elapsed.Seconds())
	if err != nil {
		m.handlerErrors.WithLabelValues(output).Inc()
	}
}

// ObserveRender counts a rendered chart image. Safe on a nil receiver.
func (m *Metrics) ObserveRender(output, format string) {
	if m == nil {
		return
	}
	m.chartRenders.WithLabelValues(output, format).Inc()
}

// SetTableRows publishes the loaded table size. Safe on a nil receiver.
func (m *Metrics) SetTableRows(n int) {
	if m == nil {
		return
	}
	m.tableRows.Set(float64(n))
}
