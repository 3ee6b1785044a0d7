package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "ecurve"

// Collector records benchmark runs. The zero value is not usable; create one
// with NewCollector. A nil *Collector ignores every observation.
type Collector struct {
	registry  *prometheus.Registry
	ops       *prometheus.CounterVec
	failures  *prometheus.CounterVec
	runs      *prometheus.HistogramVec
	nsPerOp   *prometheus.GaugeVec
	bytesOp   *prometheus.GaugeVec
	fieldBits *prometheus.GaugeVec
}

// NewCollector builds a collector on a fresh registry that also exports the
// Go runtime collector.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "multiplications_total",
			Help:      "Field multiplications completed per strategy.",
		}, []string{"strategy", "field"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "failures_total",
			Help:      "Benchmark runs that ended with an error.",
		}, []string{"strategy", "field"}),
		runs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "run_duration_seconds",
			Help:      "Wall time of one strategy run.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"strategy", "field"}),
		nsPerOp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "nanoseconds_per_op",
			Help:      "Mean time per multiplication in the last run.",
		}, []string{"strategy", "field"}),
		bytesOp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "bytes_per_op",
			Help:      "Mean heap bytes allocated per multiplication in the last run.",
		}, []string{"strategy", "field"}),
		fieldBits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "field_modulus_bits",
			Help:      "Bit length of the benchmarked modulus.",
		}, []string{"field"}),
	}
	c.registry.MustRegister(
		c.ops, c.failures, c.runs, c.nsPerOp, c.bytesOp, c.fieldBits,
		collectors.NewGoCollector(),
	)
	return c
}

// Run describes one finished strategy run.
type Run struct {
	Strategy string
	Field    string
	Bits     int
	Ops      int
	Duration time.Duration
	Alloc    AllocDelta
	Err      error
}

// Observe records a finished run.
func (c *Collector) Observe(r Run) {
	if c == nil {
		return
	}
	c.fieldBits.WithLabelValues(r.Field).Set(float64(r.Bits))
	c.runs.WithLabelValues(r.Strategy, r.Field).Observe(r.Duration.Seconds())
	if r.Err != nil {
		c.failures.WithLabelValues(r.Strategy, r.Field).Inc()
		return
	}
	c.ops.WithLabelValues(r.Strategy, r.Field).Add(float64(r.Ops))
	if r.Ops > 0 {
		c.nsPerOp.WithLabelValues(r.Strategy, r.Field).Set(float64(r.Duration.Nanoseconds()) / float64(r.Ops))
		bytes, _ := r.Alloc.PerOp(r.Ops)
		c.bytesOp.WithLabelValues(r.Strategy, r.Field).Set(bytes)
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes every metric in the Prometheus text format to path,
// atomically replacing any previous file. The output suits the node
// exporter's textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
