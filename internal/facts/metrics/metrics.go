package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FactsRecorded     prometheus.Counter
	ConflictsDetected prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		FactsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "exhibit_facts_recorded_total",
			Help: "Total number of statements of fact appended to the ledger",
		}),
		ConflictsDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "exhibit_fact_conflicts_detected_total",
			Help: "Total number of facts flagged as conflicting at insertion",
		}),
	}
}

func (m *Metrics) IncrementFactsRecorded() {
	if m != nil {
		m.FactsRecorded.Inc()
	}
}

func (m *Metrics) IncrementConflictsDetected() {
	if m != nil {
		m.ConflictsDetected.Inc()
	}
}
