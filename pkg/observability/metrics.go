package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records engine activity in Prometheus collectors.
type Metrics struct {
	evaluations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	checks      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markcheck_evaluations_total",
				Help: "Total number of evaluations by outcome",
			},
			[]string{"outcome", "cached"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "markcheck_evaluation_duration_seconds",
				Help:    "Duration of evaluations",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"cached"},
		),
		checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markcheck_checks_total",
				Help: "Total number of check executions by check and outcome",
			},
			[]string{"check", "outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.evaluations, m.duration, m.checks} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.checks.WithLabelValues(e.Check, e.Outcome.String()).Inc()
		},
		OnEvaluationEnd: func(_ context.Context, e *domain.EvaluationEvent) {
			cached := strconv.FormatBool(e.Cached)
			m.evaluations.WithLabelValues(e.Outcome.String(), cached).Inc()
			m.duration.WithLabelValues(cached).Observe(e.Duration.Seconds())
		},
	}
}
