package wagerservice

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WagerMetrics records service operation outcomes.
type WagerMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
	RecordRoundPosted(ctx context.Context, bets int)
}

type prometheusMetrics struct {
	attempts     *prometheus.CounterVec
	successes    *prometheus.CounterVec
	failures     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	postedBets   prometheus.Counter
	roundsPosted prometheus.Counter
}

// NewPrometheusMetrics registers the wager collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) WagerMetrics {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wager",
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wager",
			Name:      "operation_success_total",
			Help:      "Service operations that completed without an infrastructure error.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wager",
			Name:      "operation_failures_total",
			Help:      "Service operations that returned an error or panicked.",
		}, []string{"operation", "service"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wager",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		postedBets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wager",
			Name:      "posted_bets_total",
			Help:      "Bets frozen by round posting.",
		}),
		roundsPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wager",
			Name:      "rounds_posted_total",
			Help:      "Rounds posted.",
		}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.duration, m.postedBets, m.roundsPosted)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordRoundPosted(_ context.Context, bets int) {
	m.roundsPosted.Inc()
	m.postedBets.Add(float64(bets))
}

type noopMetrics struct{}

// NewNoop returns metrics that discard everything.
func NewNoop() WagerMetrics { return noopMetrics{} }

func (noopMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noopMetrics) RecordRoundPosted(context.Context, int)                                 {}
