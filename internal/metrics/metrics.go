// Package metrics holds the Prometheus collectors for the ledger server.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "walletwise"

// Metrics is a set of collectors bound to one registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	ledgerOps      *prometheus.CounterVec
	settledAmount  prometheus.Counter
	publishFailure *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_requests_total",
				Help:      "How many RPCs processed, partitioned by procedure and result code.",
			},
			[]string{"procedure", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_duration_seconds",
				Help:      "The RPC latencies in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"procedure", "code"},
		),
		ledgerOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_operations_total",
				Help:      "Ledger mutations, partitioned by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		settledAmount: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "settled_amount_total",
				Help:      "Sum of all settled share amounts, regardless of currency.",
			},
		),
		publishFailure: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "event_publish_failures_total",
				Help:      "Events that could not be delivered to the broker.",
			},
			[]string{"type"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.requestCount,
		m.requestDuration,
		m.ledgerOps,
		m.settledAmount,
		m.publishFailure,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("could not register %s with Prometheus: %w", c, err)
		}
	}

	return m, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(procedure, code).Inc()
	m.requestDuration.WithLabelValues(procedure, code).Observe(elapsed.Seconds())
}

// LedgerOp counts a ledger mutation such as "create", "delete" or "settle".
func (m *Metrics) LedgerOp(operation, outcome string) {
	if m == nil {
		return
	}
	m.ledgerOps.WithLabelValues(operation, outcome).Inc()
}

// Settled adds a settled share amount.
func (m *Metrics) Settled(amount float64) {
	if m == nil {
		return
	}
	m.settledAmount.Add(amount)
}

// PublishFailed counts an event that was dropped.
func (m *Metrics) PublishFailed(eventType string) {
	if m == nil {
		return
	}
	m.publishFailure.WithLabelValues(eventType).Inc()
}
