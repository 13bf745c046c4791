package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/telemetry"
)

// routingPrefix namespaces routing keys on the topic exchange, so consumers
// can bind "escrow.task_*" or "escrow.#".
const routingPrefix = "escrow."

// amqpChannel is the subset of *amqp.Channel the publisher uses.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// RabbitPublisher publishes events to a durable topic exchange as
// persistent JSON messages.
type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
	logger   *slog.Logger
	now      func() time.Time
}

// DialRabbit connects to url, opens a channel and declares exchange.
func DialRabbit(url, exchange string, logger *slog.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declaring exchange %q: %w", exchange, err)
	}

	p := newRabbitPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

func newRabbitPublisher(ch amqpChannel, exchange string, logger *slog.Logger) *RabbitPublisher {
	return &RabbitPublisher{ch: ch, exchange: exchange, logger: logger, now: time.Now}
}

// Publish sends body with routing key "escrow.<name>". The current trace
// context travels in the message headers.
func (p *RabbitPublisher) Publish(ctx context.Context, name escrow.EventName, body []byte) error {
	key := routingPrefix + string(name)

	ctx, span := telemetry.Tracer().Start(ctx, "rabbitmq.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination.name", p.exchange),
			attribute.String("messaging.rabbitmq.destination.routing_key", key),
			telemetry.AttrEvent.String(string(name)),
		),
	)
	defer span.End()

	if p.ch.IsClosed() {
		err := fmt.Errorf("rabbitmq channel closed: %w", domain.ErrUnavailable)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	headers := amqp.Table{}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier(headers))

	err := p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		Type:         string(name),
		Headers:      headers,
		Body:         body,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("publishing %s: %w: %w", key, domain.ErrUnavailable, err)
	}

	p.logger.DebugContext(ctx, "event published",
		slog.String("exchange", p.exchange),
		slog.String("routing_key", key),
	)
	return nil
}

// Name implements ports.HealthChecker.
func (p *RabbitPublisher) Name() string { return "rabbitmq" }

// HealthCheck reports whether the channel is open.
func (p *RabbitPublisher) HealthCheck(_ context.Context) error {
	if p.ch.IsClosed() || (p.conn != nil && p.conn.IsClosed()) {
		return fmt.Errorf("rabbitmq connection closed: %w", domain.ErrUnavailable)
	}
	return nil
}

// Close closes the channel and connection.
func (p *RabbitPublisher) Close() error {
	var errs []error
	if err := p.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		errs = append(errs, err)
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// headerCarrier adapts AMQP headers to propagation.TextMapCarrier.
type headerCarrier amqp.Table

func (c headerCarrier) Get(key string) string {
	s, _ := c[key].(string)
	return s
}

func (c headerCarrier) Set(key, value string) {
	c[key] = value
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
