package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen11/milestone-escrow/internal/app/fanout"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/httpclient"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/logging"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/metrics"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// maxBackoffShift caps exponential growth of the retry delay at 64x.
const maxBackoffShift = 6

// DispatcherSettings controls outbox polling and retry.
type DispatcherSettings struct {
	Interval    time.Duration
	BatchSize   int
	Workers     int
	MaxAttempts int
	Backoff     time.Duration
	// Lease hides a claimed message from other dispatchers until it is
	// marked or the lease runs out. It must outlast one delivery.
	Lease time.Duration
}

const defaultLease = time.Minute

// Dispatcher drains the outbox: transfers go to the ledger and events to the
// publisher. A delivery failure never touches contract state; the message is
// retried with backoff and parked as failed after MaxAttempts.
type Dispatcher struct {
	outbox     ports.Outbox
	transferer ports.Transferer
	publisher  ports.EventPublisher
	settings   DispatcherSettings
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

// NewDispatcher creates a Dispatcher. m may be nil.
func NewDispatcher(
	outbox ports.Outbox,
	transferer ports.Transferer,
	publisher ports.EventPublisher,
	settings DispatcherSettings,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Dispatcher {
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	if settings.MaxAttempts < 1 {
		settings.MaxAttempts = 1
	}
	if settings.Interval <= 0 {
		settings.Interval = time.Second
	}
	if settings.Lease <= 0 {
		settings.Lease = defaultLease
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		outbox:     outbox,
		transferer: transferer,
		publisher:  publisher,
		settings:   settings,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// Run polls until ctx is canceled. Poll errors are logged and the loop
// continues on the next tick.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.settings.Interval)
	defer ticker.Stop()

	d.logger.InfoContext(ctx, "outbox dispatcher started",
		slog.Duration("interval", d.settings.Interval),
		slog.Int("workers", d.settings.Workers),
	)

	for {
		if _, err := d.DispatchOnce(ctx); err != nil && ctx.Err() == nil {
			d.logger.ErrorContext(ctx, "outbox poll failed",
				slog.String("operation", "Dispatcher.Run"),
				slog.Any("error", err),
			)
		}

		select {
		case <-ctx.Done():
			d.logger.InfoContext(context.WithoutCancel(ctx), "outbox dispatcher stopped")
			return
		case <-ticker.C:
		}
	}
}

// DispatchOnce claims one batch of due messages, delivers it, and returns
// how many were sent. Dispatchers sharing an outbox never claim the same
// message while its lease holds.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	msgs, err := d.outbox.Claim(ctx, d.settings.BatchSize, d.settings.Lease)
	if err != nil {
		return 0, fmt.Errorf("claiming pending messages: %w", err)
	}
	d.metrics.SetBacklog(len(msgs))
	if len(msgs) == 0 {
		return 0, nil
	}

	results := fanout.Run(ctx, d.settings.Workers, msgs, func(ctx context.Context, m ports.OutboxMessage) (struct{}, error) {
		return struct{}{}, d.deliver(ctx, m)
	})

	var (
		sent int
		errs []error
	)
	for i, r := range results {
		m := msgs[i]
		if r.Err == nil {
			if err := d.outbox.MarkSent(ctx, m.ID); err != nil {
				errs = append(errs, fmt.Errorf("marking %s sent: %w", m.ID, err))
				continue
			}
			sent++
			d.metrics.IncDispatched(string(m.Kind), string(ports.MessageSent))
			continue
		}
		if err := d.fail(ctx, m, r.Err); err != nil {
			errs = append(errs, err)
		}
	}

	return sent, errors.Join(errs...)
}

func (d *Dispatcher) fail(ctx context.Context, m ports.OutboxMessage, cause error) error {
	maxAttempts := d.settings.MaxAttempts
	if permanent(cause) {
		maxAttempts = m.Attempts + 1
	}
	attempt := m.Attempts + 1
	next := d.now().Add(d.backoff(attempt))

	status := ports.MessagePending
	level := slog.LevelWarn
	if attempt >= maxAttempts {
		status = ports.MessageFailed
		level = slog.LevelError
	}
	d.logger.Log(ctx, level, "outbox delivery failed",
		slog.String("operation", "Dispatcher.deliver"),
		slog.String("message_id", m.ID),
		slog.String("kind", string(m.Kind)),
		slog.String("topic", m.Topic),
		slog.Int("attempt", attempt),
		slog.String("status", string(status)),
		slog.Any("error", cause),
	)
	d.metrics.IncDispatched(string(m.Kind), string(status))

	if err := d.outbox.MarkFailed(ctx, m.ID, cause, maxAttempts, next); err != nil {
		return fmt.Errorf("marking %s failed: %w", m.ID, err)
	}
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, m ports.OutboxMessage) error {
	ctx = httpclient.WithCorrelationID(ctx, m.ID)
	ctx = logging.WithLogger(ctx, d.logger.With(slog.String("message_id", m.ID)))
	switch m.Kind {
	case ports.MessageTransfer:
		var p transferPayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return fmt.Errorf("decoding transfer payload: %w: %w", err, domain.ErrValidation)
		}
		err := d.transferer.Transfer(ctx, ports.TransferRequest{
			IdempotencyKey: m.ID,
			Source:         p.From,
			Destination:    p.To,
			Amount:         p.Amount,
			Memo:           p.memo(),
		})
		// The ledger already holds a transfer under this key.
		if errors.Is(err, domain.ErrConflict) {
			return nil
		}
		return err
	case ports.MessageEvent:
		return d.publisher.Publish(ctx, escrow.EventName(m.Topic), m.Payload)
	default:
		return fmt.Errorf("unknown message kind %q: %w", m.Kind, domain.ErrValidation)
	}
}

// backoff doubles the base delay per attempt, capped.
func (d *Dispatcher) backoff(attempt int) time.Duration {
	shift := min(max(attempt-1, 0), maxBackoffShift)
	return d.settings.Backoff << shift
}

// permanent reports whether retrying cannot succeed.
func permanent(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrNotFound)
}
