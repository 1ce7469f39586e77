package metrics

import "github.com/prometheus/client_golang/prometheus"

// TransitionMetrics counts item status transitions by outcome.
type TransitionMetrics struct {
	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewTransitionMetrics registers the transition metrics on the provided registerer.
func NewTransitionMetrics(reg prometheus.Registerer) *TransitionMetrics {
	if reg == nil {
		return &TransitionMetrics{}
	}
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "item_transition_applied",
		Help: "Applied order item status transitions.",
	}, []string{"from", "to"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "item_transition_rejected",
		Help: "Rejected order item status transitions.",
	}, []string{"from", "to"})
	reg.MustRegister(applied, rejected)
	return &TransitionMetrics{applied: applied, rejected: rejected}
}

// IncApplied counts a successful transition.
func (m *TransitionMetrics) IncApplied(from, to string) {
	if m == nil || m.applied == nil {
		return
	}
	m.applied.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// IncRejected counts a transition rejected by the state machine.
func (m *TransitionMetrics) IncRejected(from, to string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}
