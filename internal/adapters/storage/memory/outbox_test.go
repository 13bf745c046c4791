package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

func msg(id string) ports.OutboxMessage {
	return ports.OutboxMessage{ID: id, Kind: ports.MessageEvent, Topic: "task_funded", Payload: []byte(`{}`)}
}

func ids(msgs []ports.OutboxMessage) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.ID
	}
	return out
}

func TestOutbox_ClaimInOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	o := memory.NewOutbox()

	if err := o.Enqueue(ctx, msg("a"), msg("b"), msg("c")); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	got, err := o.Claim(ctx, 2, time.Minute)
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	if want := []string{"a", "b"}; !equal(ids(got), want) {
		t.Errorf("Claim(2) = %v, want %v", ids(got), want)
	}
}

func TestOutbox_ClaimLease(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lease time.Duration
		want  []string
	}{
		{name: "held lease hides claimed messages", lease: time.Hour, want: []string{"c"}},
		{name: "expired lease releases them", lease: 0, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			o := memory.NewOutbox()
			_ = o.Enqueue(ctx, msg("a"), msg("b"), msg("c"))

			if _, err := o.Claim(ctx, 2, tt.lease); err != nil {
				t.Fatalf("Claim() error = %v", err)
			}
			got, _ := o.Claim(ctx, 10, tt.lease)
			if !equal(ids(got), tt.want) {
				t.Errorf("second Claim() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestOutbox_RejectsDuplicateID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	o := memory.NewOutbox()
	_ = o.Enqueue(ctx, msg("a"))

	if err := o.Enqueue(ctx, msg("b"), msg("a")); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Enqueue() error = %v, want ErrConflict", err)
	}
	if n := len(o.Messages()); n != 1 {
		t.Errorf("len(Messages()) = %d, want 1 after rejected batch", n)
	}
}

func TestOutbox_DiscardAndMarkSent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	o := memory.NewOutbox()
	_ = o.Enqueue(ctx, msg("a"), msg("b"), msg("c"))

	if err := o.Discard(ctx, "b", "unknown"); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	if err := o.MarkSent(ctx, "a"); err != nil {
		t.Fatalf("MarkSent() error = %v", err)
	}

	got, _ := o.Claim(ctx, 10, time.Minute)
	if want := []string{"c"}; !equal(ids(got), want) {
		t.Errorf("Claim() = %v, want %v", ids(got), want)
	}
	if err := o.MarkSent(ctx, "b"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("MarkSent(discarded) error = %v, want ErrNotFound", err)
	}
}

func TestOutbox_MarkFailed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	o := memory.NewOutbox()
	_ = o.Enqueue(ctx, msg("a"))
	cause := errors.New("ledger down")

	if err := o.MarkFailed(ctx, "a", cause, 2, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("MarkFailed() error = %v", err)
	}
	if got, _ := o.Claim(ctx, 10, time.Minute); len(got) != 0 {
		t.Errorf("Claim() = %v, want none before next attempt", ids(got))
	}

	m := o.Messages()[0]
	if m.Status != ports.MessagePending || m.Attempts != 1 || m.LastError != "ledger down" {
		t.Errorf("after first failure = %+v, want pending with 1 attempt", m)
	}

	if err := o.MarkFailed(ctx, "a", cause, 2, time.Now()); err != nil {
		t.Fatalf("MarkFailed() error = %v", err)
	}
	if m := o.Messages()[0]; m.Status != ports.MessageFailed || m.Attempts != 2 {
		t.Errorf("after second failure = %+v, want failed with 2 attempts", m)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
