// Package metrics defines the engine's Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the triage engine's collectors. A nil *Metrics is
// valid and records nothing, so instrumentation never forces a
// registry on library consumers.
type Metrics struct {
	EmergenciesDetected prometheus.Counter
	SessionsStarted     prometheus.Counter
	SessionsCompleted   *prometheus.CounterVec
	ClassifyDuration    prometheus.Histogram
	IntentPredictions   *prometheus.CounterVec
}

// New creates and registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EmergenciesDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "medtriage_emergencies_detected_total",
			Help: "Inputs that matched an emergency phrase.",
		}),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "medtriage_sessions_started_total",
			Help: "Symptom-checker sessions created.",
		}),
		SessionsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medtriage_sessions_completed_total",
			Help: "Symptom-checker sessions that reached a final result.",
		}, []string{"urgency"}),
		ClassifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "medtriage_classify_duration_seconds",
			Help: "Duration of the free-text classification path.",
		}),
		IntentPredictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medtriage_intent_predictions_total",
			Help: "Predicted intent tags.",
		}, []string{"intent"}),
	}

	reg.MustRegister(
		m.EmergenciesDetected,
		m.SessionsStarted,
		m.SessionsCompleted,
		m.ClassifyDuration,
		m.IntentPredictions,
	)
	return m
}

// Emergency records an emergency hit. Nil-safe.
func (m *Metrics) Emergency() {
	if m != nil {
		m.EmergenciesDetected.Inc()
	}
}

// SessionStarted records a new session. Nil-safe.
func (m *Metrics) SessionStarted() {
	if m != nil {
		m.SessionsStarted.Inc()
	}
}

// SessionCompleted records a finished session by urgency. Nil-safe.
func (m *Metrics) SessionCompleted(urgency string) {
	if m != nil {
		m.SessionsCompleted.WithLabelValues(urgency).Inc()
	}
}

// ObserveClassify records a classification duration. Nil-safe.
func (m *Metrics) ObserveClassify(seconds float64) {
	if m != nil {
		m.ClassifyDuration.Observe(seconds)
	}
}

// Intent records a predicted tag. Nil-safe.
func (m *Metrics) Intent(tag string) {
	if m != nil {
		m.IntentPredictions.WithLabelValues(tag).Inc()
	}
}
