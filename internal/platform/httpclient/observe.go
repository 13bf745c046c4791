package httpclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/milestone-escrow/internal/platform/telemetry"
)

// Values of the result attribute on client metrics.
const (
	resultSuccess     = "success"
	resultError       = "error"
	resultCircuitOpen = "circuit_open"
)

func (c *Client) startSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	return telemetry.Tracer().Start(ctx, req.Method+" "+c.peer,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			telemetry.AttrHTTPMethod.String(req.Method),
			telemetry.AttrPeerService.String(c.peer),
			attribute.String("url.path", req.URL.Path),
		),
	)
}

func endSpan(span trace.Span, resp *http.Response, attempts int, err error) {
	span.SetAttributes(telemetry.AttrAttempts.Int(attempts))
	if resp != nil {
		span.SetAttributes(telemetry.AttrHTTPStatus.Int(resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// observe records the call outside the breaker so rejections are counted.
func (c *Client) observe(ctx context.Context, method string, resp *http.Response, err error, elapsed time.Duration) {
	status := 0
	result := resultError
	if resp != nil {
		status = resp.StatusCode
		if status < http.StatusBadRequest && err == nil {
			result = resultSuccess
		}
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		result = resultCircuitOpen
	}
	c.metrics.RecordClient(ctx, c.peer, method, status, result, elapsed)
}
