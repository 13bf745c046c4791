package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Attribute keys shared by spans and metric points.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrAttempts    = attribute.Key("http.attempts")
	AttrOperation   = attribute.Key("escrow.operation")
	AttrScheduleID  = attribute.Key("escrow.schedule_id")
	AttrEvent       = attribute.Key("escrow.event")
	AttrMessageID   = attribute.Key("outbox.message_id")
)

// Metrics holds the HTTP instruments for the inbound API and the ledger
// client.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter
}

// NewMetrics creates the instruments on mp's meter for this module.
func NewMetrics(mp metric.MeterProvider, serviceName string) (*Metrics, error) {
	meter := mp.Meter(instrumentationScope,
		metric.WithInstrumentationAttributes(semconv.ServiceName(serviceName)))

	var (
		m    Metrics
		errs []error
	)
	collect := func(err error) { errs = append(errs, err) }

	var err error
	m.ServerRequestDuration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Duration of inbound API requests"), metric.WithUnit("s"))
	collect(err)
	m.ServerRequestTotal, err = meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Inbound API requests"), metric.WithUnit("{request}"))
	collect(err)
	m.ClientRequestDuration, err = meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Duration of outbound requests including retries"), metric.WithUnit("s"))
	collect(err)
	m.ClientRequestTotal, err = meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Outbound requests"), metric.WithUnit("{request}"))
	collect(err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordServer records one inbound request. route is the matched pattern,
// never the raw path, to keep cardinality bounded.
func (m *Metrics) RecordServer(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if status >= 400 {
		result = "error"
	}
	attrs := metric.WithAttributes(
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
		AttrHTTPStatus.Int(status),
		AttrResult.String(result),
	)
	m.ServerRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.ServerRequestTotal.Add(ctx, 1, attrs)
}

// RecordClient records one outbound call. result is one of "success",
// "error" or "circuit_open".
func (m *Metrics) RecordClient(ctx context.Context, peer, method string, status int, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		AttrPeerService.String(peer),
		AttrHTTPMethod.String(method),
		AttrHTTPStatus.Int(status),
		AttrResult.String(result),
	)
	m.ClientRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.ClientRequestTotal.Add(ctx, 1, attrs)
}
