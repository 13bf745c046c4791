package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time check that AdvisoryLocker implements ports.OperationLocker.
var _ ports.OperationLocker = (*AdvisoryLocker)(nil)

// operationLockID is the advisory lock key shared by every replica.
const operationLockID int64 = 0x657363726f77 // "escrow"

// AdvisoryLocker serializes operations across replicas with a session-level
// advisory lock. The lock lives on one pooled connection, held from Lock
// until the returned unlock runs.
type AdvisoryLocker struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewAdvisoryLocker creates an AdvisoryLocker on pool.
func NewAdvisoryLocker(pool *pgxpool.Pool, logger *slog.Logger) *AdvisoryLocker {
	return &AdvisoryLocker{db: pool, logger: logger}
}

// Lock blocks until the advisory lock is held or ctx is done.
func (l *AdvisoryLocker) Lock(ctx context.Context) (func(), error) {
	conn, err := l.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", mapErr(err))
	}
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, operationLockID); err != nil {
		// The session may still hold or be waiting for the lock.
		conn.Conn().Close(context.WithoutCancel(ctx))
		conn.Release()
		return nil, fmt.Errorf("taking advisory lock: %w", mapErr(err))
	}

	return func() {
		ctx := context.WithoutCancel(ctx)
		if _, err := conn.Exec(ctx, `SELECT pg_advisory_unlock($1)`, operationLockID); err != nil {
			l.logger.ErrorContext(ctx, "advisory unlock failed, dropping connection",
				slog.String("operation", "AdvisoryLocker.Unlock"),
				slog.Any("error", err),
			)
			conn.Conn().Close(ctx)
		}
		conn.Release()
	}, nil
}
