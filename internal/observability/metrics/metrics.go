package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the lead submission pipeline.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	pipelineLatency  prometheus.Histogram
}

// Outcome labels for submissionsTotal.
const (
	OutcomeAccepted   = "accepted"
	OutcomeThrottled  = "throttled"
	OutcomeBadPayload = "bad_payload"
	OutcomeCaptcha    = "captcha_failed"
	OutcomeInvalid    = "validation_failed"
	OutcomeStorage    = "storage_failed"
	OutcomeInternal   = "internal_error"
)

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadplatform",
			Subsystem: "submissions",
			Name:      "total",
			Help:      "Lead submissions by pipeline outcome",
		}, []string{"outcome"}),
		pipelineLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadplatform",
			Subsystem: "submissions",
			Name:      "pipeline_latency_seconds",
			Help:      "Latency of the lead submission pipeline",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.pipelineLatency)
	return m
}

// ObserveSubmission counts one submission with its outcome.
func (m *LeadMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

// ObservePipelineLatency records the time one request spent in the pipeline.
func (m *LeadMetrics) ObservePipelineLatency(seconds float64) {
	if m == nil {
		return
	}
	m.pipelineLatency.Observe(seconds)
}
