// Package metrics exposes Prometheus instrumentation for ledger operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for Operations.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
)

// Metrics bundles the collectors recorded by the ledger service.
type Metrics struct {
	Operations     *prometheus.CounterVec
	AutosaveErrors prometheus.Counter
	Transfers      prometheus.Histogram
	ActiveLedgers  prometheus.Gauge
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evensplit",
			Name:      "ledger_operations_total",
			Help:      "Ledger operations by name and result.",
		}, []string{"operation", "result"}),
		AutosaveErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "evensplit",
			Name:      "autosave_errors_total",
			Help:      "Snapshots that could not be autosaved.",
		}),
		Transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "evensplit",
			Name:      "settlement_transfers",
			Help:      "Number of transfers per settlement plan.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		ActiveLedgers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "evensplit",
			Name:      "active_ledgers",
			Help:      "Ledgers currently held in memory.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.AutosaveErrors, m.Transfers, m.ActiveLedgers)
	}
	return m
}

// Observe records the outcome of one ledger operation.
func (m *Metrics) Observe(operation string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultRejected
	}
	m.Operations.WithLabelValues(operation, result).Inc()
}
