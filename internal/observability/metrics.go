package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a chart run.
type Metrics struct {
	RowsRead         prometheus.Counter
	RowsSkipped      prometheus.Counter
	Observations     prometheus.Gauge
	ExtractDuration  prometheus.Histogram
	RenderDuration   prometheus.Histogram
	Outcomes         *prometheus.CounterVec // labels: outcome={viewed,saved,skipped}
	PublishedTotal   prometheus.Counter
	PublishErrors    prometheus.Counter
	ChartRequests    prometheus.Counter
	ChartBytesServed prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsRead,
		m.RowsSkipped,
		m.Observations,
		m.ExtractDuration,
		m.RenderDuration,
		m.Outcomes,
		m.PublishedTotal,
		m.PublishErrors,
		m.ChartRequests,
		m.ChartBytesServed,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_chart",
			Name:      "rows_read_total",
			Help:      "Non-header CSV rows read.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_chart",
			Name:      "rows_skipped_total",
			Help:      "Rows dropped because the high or low was not an integer.",
		}),
		Observations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_chart",
			Name:      "observations",
			Help:      "Valid daily observations in the current chart.",
		}),
		ExtractDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_chart",
			Name:      "extract_duration_seconds",
			Help:      "Time spent reading and extracting the CSV.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_chart",
			Name:      "render_duration_seconds",
			Help:      "Time spent laying out the chart figure.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		Outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_chart",
			Name:      "outcomes_total",
			Help:      "Runs by outcome of the view/save prompt.",
		}, []string{"outcome"}),
		PublishedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_chart",
			Name:      "observations_published_total",
			Help:      "Observations written to the Kafka export topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_chart",
			Name:      "publish_errors_total",
			Help:      "Failed Kafka export attempts.",
		}),
		ChartRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_chart",
			Name:      "chart_requests_total",
			Help:      "Chart PNG requests served by the viewer.",
		}),
		ChartBytesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_chart",
			Name:      "chart_bytes_served_total",
			Help:      "PNG bytes served by the viewer.",
		}),
	}
}
