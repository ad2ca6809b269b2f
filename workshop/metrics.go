package workshop

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes, used as the "outcome" metric label.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type metrics struct {
	submissions *prometheus.CounterVec
	issues      *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "formschema",
				Subsystem: "workshop",
				Name:      "submissions_total",
				Help:      "Workshop applications by outcome.",
			},
			[]string{"outcome"},
		),
		issues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "formschema",
				Subsystem: "workshop",
				Name:      "validation_issues_total",
				Help:      "Validation issues found in rejected applications, by code.",
			},
			[]string{"code"},
		),
	}
}

// register adds the collectors to reg. Collectors that are already registered
// are reused so several services can share one registry.
func (m *metrics) register(reg prometheus.Registerer) error {
	if reg == nil {
		return nil
	}
	for _, c := range []**prometheus.CounterVec{&m.submissions, &m.issues} {
		if err := reg.Register(*c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return err
			}
			*c = existing
		}
	}
	return nil
}
