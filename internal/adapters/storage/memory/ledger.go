package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time check that Ledger implements ports.Transferer.
var _ ports.Transferer = (*Ledger)(nil)

// Ledger moves value between in-memory balances. A source that cannot cover
// the amount gets domain.ErrInsufficientFunds, and a repeated idempotency key
// gets domain.ErrConflict, as the HTTP ledger answers.
type Ledger struct {
	mu        sync.Mutex
	seen      map[string]struct{}
	transfers []ports.TransferRequest
	balances  map[escrow.AccountID]escrow.Amount
	logger    *slog.Logger
}

// NewLedger returns a Ledger with every balance at zero.
func NewLedger(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ledger{
		seen:     make(map[string]struct{}),
		balances: make(map[escrow.AccountID]escrow.Amount),
		logger:   logger,
	}
}

// Credit adds amount to account outside any transfer. It seeds client
// balances for local runs and tests.
func (l *Ledger) Credit(account escrow.AccountID, amount escrow.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, err := l.balances[account].Add(amount)
	if err != nil {
		return fmt.Errorf("crediting %s: %w", account, err)
	}
	l.balances[account] = balance
	return nil
}

// Transfer moves req.Amount from req.Source to req.Destination.
func (l *Ledger) Transfer(ctx context.Context, req ports.TransferRequest) error {
	fields := map[string]string{}
	if req.Source.IsZero() {
		fields["source"] = domain.MsgRequired
	}
	if req.Destination.IsZero() {
		fields["destination"] = domain.MsgRequired
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[req.IdempotencyKey]; ok {
		return fmt.Errorf("transfer %s: %w", req.IdempotencyKey, domain.ErrConflict)
	}
	have := l.balances[req.Source]
	if have.Cmp(req.Amount) < 0 {
		return domain.Rejectf(domain.ErrInsufficientFunds, "%s holds %s, transfer needs %s", req.Source, have, req.Amount)
	}
	credited, err := l.balances[req.Destination].Add(req.Amount)
	if err != nil {
		return err
	}
	l.seen[req.IdempotencyKey] = struct{}{}
	l.balances[req.Source] = have.SaturatingSub(req.Amount)
	if req.Source == req.Destination {
		credited = have
	}
	l.balances[req.Destination] = credited
	l.transfers = append(l.transfers, req)

	l.logger.InfoContext(ctx, "ledger transfer applied",
		slog.String("idempotency_key", req.IdempotencyKey),
		slog.String("source", req.Source.String()),
		slog.String("destination", req.Destination.String()),
		slog.String("amount", req.Amount.String()),
		slog.String("memo", req.Memo),
	)
	return nil
}

// Balance returns what account currently holds.
func (l *Ledger) Balance(account escrow.AccountID) escrow.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account]
}

// Transfers returns the applied transfers in order.
func (l *Ledger) Transfers() []ports.TransferRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ports.TransferRequest, len(l.transfers))
	copy(out, l.transfers)
	return out
}
