package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	DecisionsTotal    *prometheus.CounterVec
	EvaluatorFailures prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		DecisionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "exhibit_admissibility_decisions_total",
			Help: "Total number of admissibility decisions by final status",
		}, []string{"status"}),
		EvaluatorFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "exhibit_admissibility_evaluator_failures_total",
			Help: "Total number of rule evaluator faults downgraded per the failure policy",
		}),
	}
}

func (m *Metrics) IncrementDecisions(status string) {
	if m != nil {
		m.DecisionsTotal.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncrementEvaluatorFailures() {
	if m != nil {
		m.EvaluatorFailures.Inc()
	}
}
