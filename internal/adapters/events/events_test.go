package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) IsClosed() bool { return f.closed }

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var body = []byte(`{"event":"task_funded","params":{"schedule_id":1}}`)

func TestLogPublisher(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	if err := p.Publish(context.Background(), escrow.EventTaskFunded, body); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if line["event"] != "task_funded" || line["payload"] != string(body) {
		t.Errorf("log line = %v, want event and payload", line)
	}
}

func TestRabbitPublisher_Publish(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{}
	p := newRabbitPublisher(ch, "escrow.events", discard())

	if err := p.Publish(context.Background(), escrow.EventTaskFunded, body); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(ch.sent) != 1 {
		t.Fatalf("published %d messages, want 1", len(ch.sent))
	}

	got := ch.sent[0]
	if got.exchange != "escrow.events" || got.key != "escrow.task_funded" {
		t.Errorf("published to %s/%s, want escrow.events/escrow.task_funded", got.exchange, got.key)
	}
	if got.msg.DeliveryMode != amqp.Persistent {
		t.Errorf("DeliveryMode = %d, want persistent", got.msg.DeliveryMode)
	}
	if got.msg.ContentType != "application/json" || !bytes.Equal(got.msg.Body, body) {
		t.Errorf("message = %+v, want JSON body unchanged", got.msg)
	}
}

func TestRabbitPublisher_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ch   *fakeChannel
	}{
		{name: "closed channel", ch: &fakeChannel{closed: true}},
		{name: "publish error", ch: &fakeChannel{err: errors.New("connection reset")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newRabbitPublisher(tt.ch, "escrow.events", discard())
			err := p.Publish(context.Background(), escrow.EventTaskStarted, body)
			if !errors.Is(err, domain.ErrUnavailable) {
				t.Errorf("Publish() error = %v, want ErrUnavailable", err)
			}
		})
	}
}

func TestRabbitPublisher_HealthCheck(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{}
	p := newRabbitPublisher(ch, "escrow.events", discard())

	if err := p.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v, want nil", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := p.HealthCheck(context.Background()); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("HealthCheck() after Close error = %v, want ErrUnavailable", err)
	}
}

func TestHeaderCarrier(t *testing.T) {
	t.Parallel()

	h := amqp.Table{"other": 1}
	c := headerCarrier(h)
	c.Set("traceparent", "00-abc-def-01")

	if got := c.Get("traceparent"); got != "00-abc-def-01" {
		t.Errorf("Get(traceparent) = %q", got)
	}
	if got := c.Get("other"); got != "" {
		t.Errorf("Get(other) = %q, want empty for non-string value", got)
	}
	if n := len(c.Keys()); n != 2 {
		t.Errorf("len(Keys()) = %d, want 2", n)
	}
}
