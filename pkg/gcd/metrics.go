package gcd

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "cbgcd"

var (
	// Registry holds the engine's metrics. It is private to the package so
	// embedding applications decide whether and where to expose it.
	Registry = prometheus.NewRegistry()

	// callsTotal counts GCD calls by the path the orchestrator took.
	callsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "calls_total",
		Help:      "Number of GCD calls by dispatch path.",
	}, []string{"path"})

	// stepsTotal counts reduction steps by stage and kind.
	stepsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "steps_total",
		Help:      "Number of reduction steps by stage and kind.",
	}, []string{"stage", "kind"})

	// watermarkCrossings counts operands that exceeded a configured watermark
	// for the first time in an engine.
	watermarkCrossings = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "watermark_crossings_total",
		Help:      "Number of watermarks crossed by operand sizes.",
	})

	// kernelInfo is set to 1 for each kernel an engine was built with.
	kernelInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "kernel_info",
		Help:      "Word kernels in use, labelled by name.",
	}, []string{"kernel"})
)

const (
	pathNative = "native"
	pathMixed  = "mixed"
	pathBig    = "big"
)

func init() {
	Registry.MustRegister(callsTotal, stepsTotal, watermarkCrossings, kernelInfo)
}

// flush adds the step counts of one reduction to the package counters.
func (s stepCounts) flush() {
	add := func(stage, kind string, n int) {
		if n > 0 {
			stepsTotal.WithLabelValues(stage, kind).Add(float64(n))
		}
	}
	add("halfgcd", "matrix", s.halfGCD)
	add("halfgcd", "classical", s.halfGCDClassical)
	add("halfgcd", "fallback", s.halfGCDFallback)
	add("lehmer", "matrix", s.lehmer)
	add("lehmer", "fallback", s.lehmerFallback)
	add("euclid", "classical", s.euclid)
}
