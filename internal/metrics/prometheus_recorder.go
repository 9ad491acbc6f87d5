package metrics

import (
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	buildDuration   prom.Histogram
	buildOutcome    *prom.CounterVec
	buildCandidates prom.Gauge
	toolDuration    *prom.HistogramVec
	toolExits       *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "cargo_binutils",
			Name:      "build_duration_seconds",
			Help:      "Duration of the cargo build step",
			Buckets:   prom.ExponentialBuckets(0.25, 2, 10),
		})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "cargo_binutils",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by artifact selection result",
		}, []string{"outcome"})
		pr.buildCandidates = prom.NewGauge(prom.GaugeOpts{
			Namespace: "cargo_binutils",
			Name:      "build_candidates",
			Help:      "Matching artifacts seen in the last build before tie-breaking",
		})
		pr.toolDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "cargo_binutils",
			Name:      "tool_duration_seconds",
			Help:      "Duration of the proxied LLVM tool",
			Buckets:   prom.DefBuckets,
		}, []string{"tool"})
		pr.toolExits = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "cargo_binutils",
			Name:      "tool_exits_total",
			Help:      "Proxied tool exits by exit code",
		}, []string{"tool", "code"})
		reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.buildCandidates, pr.toolDuration, pr.toolExits)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetBuildCandidates(n int) {
	if p == nil || p.buildCandidates == nil {
		return
	}
	p.buildCandidates.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveToolDuration(tool string, d time.Duration) {
	if p == nil || p.toolDuration == nil {
		return
	}
	p.toolDuration.WithLabelValues(tool).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncToolExit(tool string, code int) {
	if p == nil || p.toolExits == nil {
		return
	}
	p.toolExits.WithLabelValues(tool, strconv.Itoa(code)).Inc()
}
