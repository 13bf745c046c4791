package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
)

// ContractStore persists the single escrow aggregate and reports its footprint.
type ContractStore interface {
	// Load returns domain.ErrNotFound before construction.
	Load(ctx context.Context) (*escrow.Contract, error)

	// Create stores a newly constructed contract.
	// Returns domain.ErrConflict if one already exists.
	Create(ctx context.Context, c *escrow.Contract) error

	// Save replaces the stored contract and enqueues msgs as pending outbox
	// messages in the same commit. Either both land or neither does.
	Save(ctx context.Context, c *escrow.Contract, msgs ...OutboxMessage) error

	// Usage returns the number of bytes the stored contract occupies.
	Usage(ctx context.Context) (uint64, error)
}

// MessageKind distinguishes what an outbox message carries.
type MessageKind string

const (
	MessageTransfer MessageKind = "transfer"
	MessageEvent    MessageKind = "event"
)

// MessageStatus is the dispatch state of an outbox message.
type MessageStatus string

const (
	MessagePending MessageStatus = "pending"
	MessageSent    MessageStatus = "sent"
	MessageFailed  MessageStatus = "failed"
)

// OutboxMessage is a transfer or event waiting for dispatch.
type OutboxMessage struct {
	ID          string
	Kind        MessageKind
	Topic       string
	Payload     []byte
	Status      MessageStatus
	Attempts    int
	LastError   string
	NextAttempt time.Time
	CreatedAt   time.Time
}

// Outbox hands effects of committed operations to the dispatcher. Messages
// enter it through ContractStore.Save.
type Outbox interface {
	// Discard removes messages that were enqueued by a commit that later
	// rolled back.
	Discard(ctx context.Context, ids ...string) error

	// Claim returns up to limit due pending messages, oldest first, and
	// pushes their next attempt out by lease. Concurrent claimers never
	// receive the same message until the lease runs out.
	Claim(ctx context.Context, limit int, lease time.Duration) ([]OutboxMessage, error)

	// MarkSent records a successful dispatch.
	MarkSent(ctx context.Context, id string) error

	// MarkFailed records a failed attempt. Once attempts reach maxAttempts
	// the message is parked as failed; otherwise it is rescheduled at next.
	MarkFailed(ctx context.Context, id string, cause error, maxAttempts int, next time.Time) error
}

// OperationLocker serializes mutating operations on the contract.
type OperationLocker interface {
	// Lock blocks until the lock is held or ctx is done. The returned
	// function releases it.
	Lock(ctx context.Context) (unlock func(), err error)
}

// IdempotencyRecord is a stored response for a keyed mutating request.
// A zero Status marks a reservation whose request is still in flight.
type IdempotencyRecord struct {
	Caller   string
	Key      string
	Endpoint string
	Status   int
	Body     []byte
}

// InFlight reports whether the record is a reservation without a response.
func (r *IdempotencyRecord) InFlight() bool {
	return r.Status == 0
}

// IdempotencyStore remembers responses to keyed requests.
type IdempotencyStore interface {
	// Get returns nil, nil when no record exists.
	Get(ctx context.Context, caller, key, endpoint string) (*IdempotencyRecord, error)

	// Reserve claims the key for a request about to run.
	// Returns domain.ErrConflict if any record for the key exists.
	Reserve(ctx context.Context, caller, key, endpoint string) error

	// Complete stores the final response, replacing the reservation.
	Complete(ctx context.Context, rec IdempotencyRecord) error

	// Release drops a reservation so the request may be retried.
	Release(ctx context.Context, caller, key, endpoint string) error
}
