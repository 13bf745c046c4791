// Package metrics exposes Prometheus collectors for escrow operations and
// outbox dispatch, served on /metrics alongside the OpenTelemetry pipeline.
//
// Collectors are registered on a private registry so tests can construct
// independent instances:
//
//	m := metrics.New()
//	m.ObserveOperation("ReleaseFunds", "ok", time.Since(start))
//	router.Handle("/metrics", m.Handler())
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "escrow"

// Metrics groups the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	operationDuration *prometheus.HistogramVec
	events            *prometheus.CounterVec
	transfers         *prometheus.CounterVec
	dispatched        *prometheus.CounterVec
	outboxBacklog     prometheus.Gauge
	heldBalance       prometheus.Gauge
}

// New registers all collectors, plus the Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		operationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Escrow operation latency by operation and result.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"operation", "result"},
		),
		events: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Committed contract events by name.",
			},
			[]string{"event"},
		),
		transfers: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transfers_enqueued_total",
				Help:      "Outbound transfers queued by kind (payout, sweep).",
			},
			[]string{"kind"},
		),
		dispatched: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outbox_dispatched_total",
				Help:      "Outbox delivery attempts by message kind and status.",
			},
			[]string{"kind", "status"},
		),
		outboxBacklog: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outbox_backlog",
			Help:      "Messages fetched by the last dispatcher poll.",
		}),
		heldBalance: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "held_balance",
			Help:      "Held balance after the last commit, in the smallest unit. Precision is lost above 2^53.",
		}),
	}
}

// ObserveOperation records one service call.
func (m *Metrics) ObserveOperation(operation, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.operationDuration.WithLabelValues(operation, result).Observe(d.Seconds())
}

// IncEvent counts a committed event.
func (m *Metrics) IncEvent(name string) {
	if m == nil || name == "" {
		return
	}
	m.events.WithLabelValues(name).Inc()
}

// IncTransfer counts an enqueued transfer.
func (m *Metrics) IncTransfer(kind string) {
	if m == nil {
		return
	}
	m.transfers.WithLabelValues(kind).Inc()
}

// IncDispatched counts an outbox delivery attempt outcome.
func (m *Metrics) IncDispatched(kind, status string) {
	if m == nil {
		return
	}
	m.dispatched.WithLabelValues(kind, status).Inc()
}

// SetBacklog records the size of the last dispatcher batch.
func (m *Metrics) SetBacklog(n int) {
	if m == nil {
		return
	}
	m.outboxBacklog.Set(float64(n))
}

// SetHeldBalance records the held balance as a float approximation.
func (m *Metrics) SetHeldBalance(v float64) {
	if m == nil {
		return
	}
	m.heldBalance.Set(v)
}

// Registry exposes the underlying registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
