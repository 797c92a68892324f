package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector exposes pipeline counters: trace normalization, dataset
// output and evaluator eligibility outcomes.
type Collector struct {
	tracesNormalized prometheus.Counter
	traceWarnings    *prometheus.CounterVec
	recordsWritten   prometheus.Counter
	eligibility      *prometheus.CounterVec
	buildDuration    prometheus.Histogram

	logger *zap.Logger
}

// NewCollector creates and registers a collector under the given
// namespace.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.tracesNormalized = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "traces_normalized_total",
		Help:      "Total number of raw traces normalized",
	})

	c.traceWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trace_warnings_total",
		Help:      "Total trace normalization warnings by code",
	}, []string{"code"})

	c.recordsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_written_total",
		Help:      "Total evaluation records written to datasets",
	})

	c.eligibility = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "eligibility_checks_total",
		Help:      "Total eligibility checks by evaluator and outcome",
	}, []string{"evaluator", "outcome"})

	c.buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dataset_build_duration_seconds",
		Help:      "Dataset build duration in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	return c
}

// TraceNormalized counts one normalized trace.
func (c *Collector) TraceNormalized() {
	c.tracesNormalized.Inc()
}

// TraceWarning counts one normalization warning by code.
func (c *Collector) TraceWarning(code string) {
	c.traceWarnings.WithLabelValues(code).Inc()
}

// RecordWritten counts one serialized evaluation record.
func (c *Collector) RecordWritten() {
	c.recordsWritten.Inc()
}

// EligibilityChecked counts one eligibility decision.
func (c *Collector) EligibilityChecked(evaluator string, eligible bool) {
	outcome := "eligible"
	if !eligible {
		outcome = "ineligible"
	}
	c.eligibility.WithLabelValues(evaluator, outcome).Inc()
}

// BuildObserved records the duration of one dataset build.
func (c *Collector) BuildObserved(d time.Duration) {
	c.buildDuration.Observe(d.Seconds())
}
