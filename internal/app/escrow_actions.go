package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time checks that the commit steps implement domain.Action.
var (
	_ domain.Action = (*collectDepositAction)(nil)
	_ domain.Action = (*saveContractAction)(nil)
)

// collectDepositAction pulls a deposit from the caller into the escrow
// account before the contract records it. Rollback returns it under a new
// key.
type collectDepositAction struct {
	ledger     ports.Transferer
	from       escrow.AccountID
	self       escrow.AccountID
	amount     escrow.Amount
	scheduleID uint64
}

func (a *collectDepositAction) Execute(ctx context.Context) error {
	err := a.ledger.Transfer(ctx, ports.TransferRequest{
		IdempotencyKey: newMessageID(),
		Source:         a.from,
		Destination:    a.self,
		Amount:         a.amount,
		Memo:           fmt.Sprintf("deposit for schedule %d", a.scheduleID),
	})
	if err != nil {
		return fmt.Errorf("collecting deposit of %s from %s: %w", a.amount, a.from, err)
	}
	return nil
}

func (a *collectDepositAction) Rollback(ctx context.Context) error {
	return a.ledger.Transfer(ctx, ports.TransferRequest{
		IdempotencyKey: newMessageID(),
		Source:         a.self,
		Destination:    a.from,
		Amount:         a.amount,
		Memo:           fmt.Sprintf("deposit refund for schedule %d", a.scheduleID),
	})
}

func (a *collectDepositAction) Description() string {
	return fmt.Sprintf("collect deposit for schedule %d", a.scheduleID)
}

// saveContractAction persists the new contract state together with the
// operation's outbox messages. Rollback writes the prior image back and
// discards the messages.
type saveContractAction struct {
	store  ports.ContractStore
	outbox ports.Outbox
	next   *escrow.Contract
	prev   *escrow.Contract
	msgs   []ports.OutboxMessage
	what   string
}

func (a *saveContractAction) Execute(ctx context.Context) error {
	return a.store.Save(ctx, a.next, a.msgs...)
}

func (a *saveContractAction) Rollback(ctx context.Context) error {
	if err := a.store.Save(ctx, a.prev); err != nil {
		return err
	}
	if len(a.msgs) == 0 {
		return nil
	}
	ids := make([]string, len(a.msgs))
	for i, m := range a.msgs {
		ids[i] = m.ID
	}
	return a.outbox.Discard(ctx, ids...)
}

func (a *saveContractAction) Description() string {
	return fmt.Sprintf("save contract after %s with %d outbox messages", a.what, len(a.msgs))
}

// transferPayload is the outbox encoding of an escrow.Transfer.
type transferPayload struct {
	Kind       escrow.TransferKind `json:"kind"`
	From       escrow.AccountID    `json:"from"`
	To         escrow.AccountID    `json:"to"`
	Amount     escrow.Amount       `json:"amount"`
	ScheduleID uint64              `json:"schedule_id"`
}

func (p transferPayload) memo() string {
	return fmt.Sprintf("%s for schedule %d", p.Kind, p.ScheduleID)
}

// messages encodes an outcome as outbox messages: transfers first, in the
// order the domain produced them, then the event.
func (s *EscrowService) messages(out escrow.Outcome) ([]ports.OutboxMessage, error) {
	now := s.now()
	msgs := make([]ports.OutboxMessage, 0, len(out.Transfers)+1)

	for _, t := range out.Transfers {
		body, err := json.Marshal(transferPayload{
			Kind:       t.Kind,
			From:       s.settings.Self,
			To:         t.To,
			Amount:     t.Amount,
			ScheduleID: t.ScheduleID,
		})
		if err != nil {
			return nil, fmt.Errorf("encoding %s transfer: %w", t.Kind, err)
		}
		msgs = append(msgs, newMessage(ports.MessageTransfer, string(t.Kind), body, now))
	}

	if !out.Event.IsZero() {
		body, err := out.Event.JSON()
		if err != nil {
			return nil, fmt.Errorf("encoding %s event: %w", out.Event.Name, err)
		}
		msgs = append(msgs, newMessage(ports.MessageEvent, string(out.Event.Name), body, now))
	}

	return msgs, nil
}

func newMessage(kind ports.MessageKind, topic string, payload []byte, now time.Time) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:          newMessageID(),
		Kind:        kind,
		Topic:       topic,
		Payload:     payload,
		Status:      ports.MessagePending,
		NextAttempt: now,
		CreatedAt:   now,
	}
}

// newMessageID returns a time-ordered id. The id doubles as the ledger
// idempotency key, so it must be stable for the message's lifetime.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
