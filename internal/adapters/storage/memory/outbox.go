package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time check that Outbox implements ports.Outbox.
var _ ports.Outbox = (*Outbox)(nil)

// Outbox is an ordered in-memory message queue.
type Outbox struct {
	mu   sync.Mutex
	msgs []ports.OutboxMessage
	now  func() time.Time
}

// NewOutbox returns an empty Outbox.
func NewOutbox() *Outbox {
	return &Outbox{now: time.Now}
}

// Enqueue appends msgs as pending. Duplicate ids are rejected as a whole.
// Store.Save calls it for committed operations.
func (o *Outbox) Enqueue(_ context.Context, msgs ...ports.OutboxMessage) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, m := range msgs {
		if o.index(m.ID) >= 0 {
			return fmt.Errorf("outbox message %s: %w", m.ID, domain.ErrConflict)
		}
	}
	for _, m := range msgs {
		m.Status = ports.MessagePending
		m.Payload = slices.Clone(m.Payload)
		o.msgs = append(o.msgs, m)
	}
	return nil
}

// Discard removes the given messages. Unknown ids are ignored.
func (o *Outbox) Discard(_ context.Context, ids ...string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.msgs = slices.DeleteFunc(o.msgs, func(m ports.OutboxMessage) bool {
		return slices.Contains(ids, m.ID)
	})
	return nil
}

// Claim returns up to limit pending messages whose next attempt is due, in
// insertion order, and defers each of them by lease.
func (o *Outbox) Claim(_ context.Context, limit int, lease time.Duration) ([]ports.OutboxMessage, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()
	var out []ports.OutboxMessage
	for i := range o.msgs {
		if limit > 0 && len(out) == limit {
			break
		}
		m := &o.msgs[i]
		if m.Status != ports.MessagePending || m.NextAttempt.After(now) {
			continue
		}
		out = append(out, *m)
		m.NextAttempt = now.Add(lease)
	}
	return out, nil
}

// MarkSent records a successful dispatch.
func (o *Outbox) MarkSent(_ context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	i := o.index(id)
	if i < 0 {
		return fmt.Errorf("outbox message %s: %w", id, domain.ErrNotFound)
	}
	o.msgs[i].Status = ports.MessageSent
	o.msgs[i].LastError = ""
	return nil
}

// MarkFailed counts an attempt and either reschedules the message at next or
// parks it as failed.
func (o *Outbox) MarkFailed(_ context.Context, id string, cause error, maxAttempts int, next time.Time) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	i := o.index(id)
	if i < 0 {
		return fmt.Errorf("outbox message %s: %w", id, domain.ErrNotFound)
	}
	m := &o.msgs[i]
	m.Attempts++
	if cause != nil {
		m.LastError = cause.Error()
	}
	if m.Attempts >= maxAttempts {
		m.Status = ports.MessageFailed
		return nil
	}
	m.NextAttempt = next
	return nil
}

// Messages returns a copy of every message regardless of status.
func (o *Outbox) Messages() []ports.OutboxMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.msgs)
}

func (o *Outbox) index(id string) int {
	return slices.IndexFunc(o.msgs, func(m ports.OutboxMessage) bool { return m.ID == id })
}
