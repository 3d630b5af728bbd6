package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Trace outcome labels recorded by the collector.
const (
	OutcomeComplete = "complete"
	OutcomePartial  = "partial"
	OutcomeSplit    = "split"
	OutcomeNone     = "none"
	OutcomeError    = "error"
)

// TraceCollector bundles Prometheus metrics for the path tracing
// engine. A nil collector is valid and records nothing, so callers
// can wire metrics in optionally.
type TraceCollector struct {
	gatherer prometheus.Gatherer

	Traces        *prometheus.CounterVec
	TraceDuration prometheus.Histogram
	TraceSegments prometheus.Histogram

	TopologyCables prometheus.Gauge
	TopologyPaths  prometheus.Gauge
}

// NewTraceCollector registers path tracing metrics against the
// provided registerer, defaulting to the global Prometheus registry
// when nil.
func NewTraceCollector(reg prometheus.Registerer) (*TraceCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	traces := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cablepath_traces_total",
		Help: "Total number of path traces, labeled by outcome.",
	}, []string{"outcome"})
	traces, err := registerCounterVec(reg, traces, "cablepath_traces_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cablepath_trace_duration_seconds",
		Help:    "Path trace latency in seconds.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}), "cablepath_trace_duration_seconds")
	if err != nil {
		return nil, err
	}

	segments, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cablepath_trace_segments",
		Help:    "Number of links crossed per traced path.",
		Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 16, 24, 32},
	}), "cablepath_trace_segments")
	if err != nil {
		return nil, err
	}

	cables, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cablepath_topology_cables",
		Help: "Current number of cables in the topology inventory.",
	}), "cablepath_topology_cables")
	if err != nil {
		return nil, err
	}
	paths, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cablepath_topology_paths",
		Help: "Current number of cached cable paths.",
	}), "cablepath_topology_paths")
	if err != nil {
		return nil, err
	}

	return &TraceCollector{
		gatherer:       gatherer,
		Traces:         traces,
		TraceDuration:  duration,
		TraceSegments:  segments,
		TopologyCables: cables,
		TopologyPaths:  paths,
	}, nil
}

// ObserveTrace records one finished trace.
func (c *TraceCollector) ObserveTrace(outcome string, segments int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.Traces != nil {
		c.Traces.WithLabelValues(outcome).Inc()
	}
	if c.TraceDuration != nil {
		c.TraceDuration.Observe(elapsed.Seconds())
	}
	if c.TraceSegments != nil && segments > 0 {
		c.TraceSegments.Observe(float64(segments))
	}
}

// SetTopologyCounts satisfies the inventory's metrics recorder hook
// so gauge values track the stored topology directly.
func (c *TraceCollector) SetTopologyCounts(cables, paths int) {
	if c == nil {
		return
	}
	if c.TopologyCables != nil {
		c.TopologyCables.Set(float64(cables))
	}
	if c.TopologyPaths != nil {
		c.TopologyPaths.Set(float64(paths))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *TraceCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
