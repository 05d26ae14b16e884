package metrics

import (
	"bytes"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// PrometheusRecorder implements Recorder on a private
// Prometheus registry.
type PrometheusRecorder struct {
	registry    *prometheus.Registry
	assertions  *prometheus.CounterVec
	queueLength prometheus.Gauge
	totals      *prometheus.GaugeVec
	skipped     prometheus.Gauge
	duration    prometheus.Histogram
}

// NewPrometheusRecorder creates a recorder with its own
// registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	r := &PrometheusRecorder{
		registry: registry,
		assertions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coccyx_assertions_evaluated_total",
				Help: "Assertions evaluated, by kind and status",
			},
			[]string{"kind", "status"},
		),
		queueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "coccyx_queue_length",
			Help: "Pending queue length at the last stabilizer poll",
		}),
		totals: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coccyx_run_total",
				Help: "Final run totals by level and status",
			},
			[]string{"level", "status"},
		),
		skipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "coccyx_run_skipped",
			Help: "Assertions left unevaluated by the last run",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "coccyx_run_duration_seconds",
			Help:    "Run phase duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		r.assertions, r.queueLength, r.totals,
		r.skipped, r.duration,
	)
	return r
}

func status(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}

// RecordAssertion increments the assertion counter.
func (r *PrometheusRecorder) RecordAssertion(kind string, passed bool) {
	r.assertions.WithLabelValues(kind, status(passed)).Inc()
}

// SetQueueLength sets the queue length gauge.
func (r *PrometheusRecorder) SetQueueLength(n int) {
	r.queueLength.Set(float64(n))
}

// RecordRun sets the final totals gauges and observes the run
// duration.
func (r *PrometheusRecorder) RecordRun(t RunTotals) {
	set := func(level, st string, v int) {
		r.totals.WithLabelValues(level, st).Set(float64(v))
	}
	set("group", "total", t.Groups)
	set("group", "passed", t.GroupsPassed)
	set("group", "failed", t.GroupsFailed)
	set("test", "total", t.Tests)
	set("test", "passed", t.TestsPassed)
	set("test", "failed", t.TestsFailed)
	set("assertion", "total", t.Assertions)
	set("assertion", "passed", t.AssertionsPassed)
	set("assertion", "failed", t.AssertionsFailed)
	r.skipped.Set(float64(t.Skipped))
	r.duration.Observe(t.Duration.Seconds())
}

// Registry returns the underlying registry.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition
// format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes all metrics to path in the Prometheus
// text format.
func (r *PrometheusRecorder) WriteTextfile(path string) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
