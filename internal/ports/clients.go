package ports

import (
	"context"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
)

// TransferRequest is one value movement handed to the ledger: a deposit
// pulled from a client into the escrow account, or a payout or sweep out of
// it. IdempotencyKey is stable across retries of the same movement.
type TransferRequest struct {
	IdempotencyKey string
	Source         escrow.AccountID
	Destination    escrow.AccountID
	Amount         escrow.Amount
	Memo           string
}

// Transferer defines the client port for the downstream value ledger.
// Implemented by the ACL adapter (HTTP) or an in-memory ledger.
type Transferer interface {
	// Transfer submits the request. Returns domain.ErrInsufficientFunds when
	// the source cannot cover the amount, domain.ErrConflict when the key was
	// already applied, and domain.ErrUnavailable when the ledger cannot be
	// reached.
	Transfer(ctx context.Context, req TransferRequest) error
}

// EventPublisher defines the client port for the event sink.
type EventPublisher interface {
	// Publish delivers one encoded event. name is the event name; body is
	// the canonical {"event","params"} JSON.
	Publish(ctx context.Context, name escrow.EventName, body []byte) error
}
