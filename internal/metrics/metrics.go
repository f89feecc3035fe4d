package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tilescore"

// Metrics holds the tournament's Prometheus instruments
type Metrics struct {
	registry *prometheus.Registry

	roundsCommitted      prometheus.Counter
	validationFailures   *prometheus.CounterVec
	storageWriteFailures *prometheus.CounterVec
	players              prometheus.Gauge
	rounds               prometheus.Gauge
}

// New creates Metrics registered on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		roundsCommitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_committed_total",
			Help:      "Rounds successfully committed to the ledger.",
		}),
		validationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected operations by violated rule.",
		}, []string{"rule"}),
		storageWriteFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_write_failures_total",
			Help:      "Failed writes to the persisted store by key.",
		}, []string{"key"}),
		players: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players",
			Help:      "Players currently in the roster.",
		}),
		rounds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rounds",
			Help:      "Rounds in the current history.",
		}),
	}
}

// RoundCommitted counts a committed round
func (m *Metrics) RoundCommitted() {
	m.roundsCommitted.Inc()
}

// ValidationFailed counts a rejected operation
func (m *Metrics) ValidationFailed(rule string) {
	m.validationFailures.WithLabelValues(rule).Inc()
}

// StorageWriteFailed counts a failed persisted write
func (m *Metrics) StorageWriteFailed(key string) {
	m.storageWriteFailures.WithLabelValues(key).Inc()
}

// SetSize records the current roster and history sizes
func (m *Metrics) SetSize(players, rounds int) {
	m.players.Set(float64(players))
	m.rounds.Set(float64(rounds))
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
