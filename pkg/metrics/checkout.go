package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records counters for the checkout wizard lifecycle.
type CheckoutMetrics struct {
	sessionsStarted prometheus.Counter
	stepAdvances    *prometheus.CounterVec
	stepBlocked     *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	submitDuration  prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	sessionsStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_sessions_started",
		Help: "Checkout wizard sessions created.",
	})
	stepAdvances := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_step_advances",
		Help: "Successful forward transitions, by step left.",
	}, []string{"step"})
	stepBlocked := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_step_blocked",
		Help: "Forward transitions blocked by step validation, by step.",
	}, []string{"step"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submissions",
		Help: "Booking submissions, by outcome.",
	}, []string{"outcome"})
	submitDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_submit_duration_seconds",
		Help:    "Duration of booking submission in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(sessionsStarted, stepAdvances, stepBlocked, submissions, submitDuration)
	return &CheckoutMetrics{
		sessionsStarted: sessionsStarted,
		stepAdvances:    stepAdvances,
		stepBlocked:     stepBlocked,
		submissions:     submissions,
		submitDuration:  submitDuration,
	}
}

// IncSessionStarted counts a new wizard session.
func (c *CheckoutMetrics) IncSessionStarted() {
	if c == nil || c.sessionsStarted == nil {
		return
	}
	c.sessionsStarted.Inc()
}

// IncStepAdvance counts a successful forward transition from the named step.
func (c *CheckoutMetrics) IncStepAdvance(step string) {
	if c == nil || c.stepAdvances == nil {
		return
	}
	c.stepAdvances.WithLabelValues(normalizeLabel(step)).Inc()
}

// IncStepBlocked counts a forward transition rejected by validation.
func (c *CheckoutMetrics) IncStepBlocked(step string) {
	if c == nil || c.stepBlocked == nil {
		return
	}
	c.stepBlocked.WithLabelValues(normalizeLabel(step)).Inc()
}

// IncSubmission counts a booking submission with the given outcome.
func (c *CheckoutMetrics) IncSubmission(outcome string) {
	if c == nil || c.submissions == nil {
		return
	}
	c.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveSubmitDuration records how long a submission took end to end.
func (c *CheckoutMetrics) ObserveSubmitDuration(d time.Duration) {
	if c == nil || c.submitDuration == nil {
		return
	}
	c.submitDuration.Observe(d.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
