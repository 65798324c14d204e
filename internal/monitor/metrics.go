package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fourinarow"

type Metrics struct {
	registry *prometheus.Registry

	ActiveSessions        prometheus.Gauge
	SessionsCreated       *prometheus.CounterVec
	SessionsFinished      *prometheus.CounterVec
	Moves                 prometheus.Counter
	ConnectedParticipants prometheus.Gauge
}

// New registers the game collectors and the Go runtime collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live game sessions",
		}),
		SessionsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Total number of created sessions by mode",
		}, []string{"mode"}),
		SessionsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_finished_total",
			Help:      "Total number of finished sessions by reason",
		}, []string{"reason"}),
		Moves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Total number of accepted drops",
		}),
		ConnectedParticipants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_participants",
			Help:      "Number of open websocket connections",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ActiveSessions,
		m.SessionsCreated,
		m.SessionsFinished,
		m.Moves,
		m.ConnectedParticipants,
	)

	return m
}

func (that *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(that.registry, promhttp.HandlerOpts{Registry: that.registry})
}

func (that *Metrics) SessionCreated(mode string) {
	that.SessionsCreated.WithLabelValues(mode).Inc()
	that.ActiveSessions.Inc()
}

func (that *Metrics) SessionFinished(reason string) {
	that.SessionsFinished.WithLabelValues(reason).Inc()
	that.ActiveSessions.Dec()
}

func (that *Metrics) MoveAccepted() {
	that.Moves.Inc()
}

func (that *Metrics) ParticipantConnected() {
	that.ConnectedParticipants.Inc()
}

func (that *Metrics) ParticipantDisconnected() {
	that.ConnectedParticipants.Dec()
}
