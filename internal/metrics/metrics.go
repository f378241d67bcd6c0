// Package metrics exposes Prometheus collectors for scan activity.
//
// Metrics implements flow.Observer, so attaching it to a session is enough
// to count answers, started flows, finished roles and rejected actions.
// Exports are counted by the export tool.
package metrics

import (
	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quietscan"

// Metrics holds the scan collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	answers       *prometheus.CounterVec
	flowsStarted  *prometheus.CounterVec
	rolesComplete *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	summaries     prometheus.Counter
	exports       *prometheus.CounterVec
}

// MustNewMetrics registers the collectors on reg and panics on a
// registration conflict. A nil reg uses the default registerer.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "flow",
				Name:      "answers_total",
				Help:      "Answers recorded, by role and answer.",
			},
			[]string{"role", "answer"},
		),
		flowsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "flow",
				Name:      "started_total",
				Help:      "Flows started from setup, by first respondent.",
			},
			[]string{"who"},
		),
		rolesComplete: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "flow",
				Name:      "roles_completed_total",
				Help:      "Roles that answered every active pillar.",
			},
			[]string{"role"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "flow",
				Name:      "rejected_actions_total",
				Help:      "Actions refused by the flow controller.",
			},
			[]string{"action"},
		),
		summaries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "summary",
				Name:      "opened_total",
				Help:      "Times a session entered the summary.",
			},
		),
		exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "archive",
				Name:      "exports_total",
				Help:      "Export payloads built, by archive outcome.",
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(m.answers, m.flowsStarted, m.rolesComplete, m.rejected, m.summaries, m.exports)
	return m
}

// Transition implements flow.Observer.
func (m *Metrics) Transition(a flow.Action, from, to flow.State) {
	if m == nil {
		return
	}
	switch act := a.(type) {
	case flow.Answer:
		m.answers.WithLabelValues(string(from.Role), string(act.Answer)).Inc()
	case flow.Start:
		m.flowsStarted.WithLabelValues(string(to.Selection.Who)).Inc()
	}
	if from.Mode == flow.ModeFlow && !from.RoleComplete() && (to.Mode == flow.ModeSummary || to.RoleComplete()) {
		m.rolesComplete.WithLabelValues(string(from.Role)).Inc()
	}
	if from.Mode != flow.ModeSummary && to.Mode == flow.ModeSummary {
		m.summaries.Inc()
	}
}

// Rejected implements flow.Observer.
func (m *Metrics) Rejected(a flow.Action, _ error) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(a.Name()).Inc()
}

// Exported counts one export. archived reports whether the payload was
// written to the archive.
func (m *Metrics) Exported(archived bool) {
	if m == nil {
		return
	}
	status := "archived"
	if !archived {
		status = "not_archived"
	}
	m.exports.WithLabelValues(status).Inc()
}
