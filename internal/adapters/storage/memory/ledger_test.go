package memory_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

func newLedger(t *testing.T) *memory.Ledger {
	t.Helper()
	return memory.NewLedger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLedger_Transfer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newLedger(t)
	if err := l.Credit("escrow", escrow.NewAmount(2000)); err != nil {
		t.Fatalf("Credit() error = %v", err)
	}

	req := ports.TransferRequest{IdempotencyKey: "m1", Source: "escrow", Destination: "freelancer", Amount: escrow.NewAmount(970)}
	if err := l.Transfer(ctx, req); err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	if err := l.Transfer(ctx, req); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("repeated Transfer() error = %v, want ErrConflict", err)
	}
	req.IdempotencyKey = "m2"
	if err := l.Transfer(ctx, req); err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}

	if got := l.Balance("freelancer"); got.Cmp(escrow.NewAmount(1940)) != 0 {
		t.Errorf("Balance(freelancer) = %s, want 1940", got)
	}
	if got := l.Balance("escrow"); got.Cmp(escrow.NewAmount(60)) != 0 {
		t.Errorf("Balance(escrow) = %s, want 60", got)
	}
	if n := len(l.Transfers()); n != 2 {
		t.Errorf("len(Transfers()) = %d, want 2", n)
	}
}

func TestLedger_TransferRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     ports.TransferRequest
		wantErr error
	}{
		{
			name:    "source cannot cover amount",
			req:     ports.TransferRequest{IdempotencyKey: "k1", Source: "client", Destination: "escrow", Amount: escrow.MustParseAmount("5000000000000000000000000000")},
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name:    "one more than balance",
			req:     ports.TransferRequest{IdempotencyKey: "k2", Source: "client", Destination: "escrow", Amount: escrow.NewAmount(1001)},
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name:    "missing source",
			req:     ports.TransferRequest{IdempotencyKey: "k3", Destination: "escrow", Amount: escrow.NewAmount(1)},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing destination",
			req:     ports.TransferRequest{IdempotencyKey: "k4", Source: "client", Amount: escrow.NewAmount(1)},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := newLedger(t)
			if err := l.Credit("client", escrow.NewAmount(1000)); err != nil {
				t.Fatalf("Credit() error = %v", err)
			}

			if err := l.Transfer(context.Background(), tt.req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Transfer() error = %v, want %v", err, tt.wantErr)
			}
			if got := l.Balance("client"); got.Cmp(escrow.NewAmount(1000)) != 0 {
				t.Errorf("Balance(client) = %s, want 1000", got)
			}
			if got := l.Balance("escrow"); !got.IsZero() {
				t.Errorf("Balance(escrow) = %s, want 0", got)
			}
			if n := len(l.Transfers()); n != 0 {
				t.Errorf("len(Transfers()) = %d, want 0", n)
			}
		})
	}
}

func TestLedger_RejectedKeyCanRetry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newLedger(t)
	req := ports.TransferRequest{IdempotencyKey: "k", Source: "client", Destination: "escrow", Amount: escrow.NewAmount(10)}

	if err := l.Transfer(ctx, req); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("Transfer() error = %v, want ErrInsufficientFunds", err)
	}
	if err := l.Credit("client", escrow.NewAmount(10)); err != nil {
		t.Fatalf("Credit() error = %v", err)
	}
	if err := l.Transfer(ctx, req); err != nil {
		t.Fatalf("Transfer() after credit error = %v", err)
	}
	if got := l.Balance("escrow"); got.Cmp(escrow.NewAmount(10)) != 0 {
		t.Errorf("Balance(escrow) = %s, want 10", got)
	}
}
