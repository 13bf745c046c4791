// Package events implements ports.EventPublisher. Events are the canonical
// {"event","params"} JSON produced by the escrow domain; publishers forward
// the bytes unchanged.
package events

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time checks that the publishers implement ports.EventPublisher.
var (
	_ ports.EventPublisher = (*LogPublisher)(nil)
	_ ports.EventPublisher = (*RabbitPublisher)(nil)
)

// LogPublisher writes each event as a structured log line. It is the sink
// for profiles without a broker.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, name escrow.EventName, body []byte) error {
	p.logger.InfoContext(ctx, "event published",
		slog.String("event", string(name)),
		slog.String("payload", string(body)),
	)
	return nil
}
