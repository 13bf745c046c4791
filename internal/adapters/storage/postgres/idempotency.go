package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time check that IdempotencyStore implements ports.IdempotencyStore.
var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps records in the escrow_idempotency table.
type IdempotencyStore struct {
	db *pgxpool.Pool
}

// NewIdempotencyStore creates an IdempotencyStore on pool.
func NewIdempotencyStore(pool *pgxpool.Pool) *IdempotencyStore {
	return &IdempotencyStore{db: pool}
}

func (s *IdempotencyStore) Get(ctx context.Context, caller, key, endpoint string) (*ports.IdempotencyRecord, error) {
	rec := ports.IdempotencyRecord{Caller: caller, Key: key, Endpoint: endpoint}
	err := s.db.QueryRow(ctx, `
		SELECT status, body FROM escrow_idempotency
		WHERE caller = $1 AND key = $2 AND endpoint = $3`,
		caller, key, endpoint,
	).Scan(&rec.Status, &rec.Body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading idempotency record: %w", mapErr(err))
	}
	return &rec, nil
}

func (s *IdempotencyStore) Reserve(ctx context.Context, caller, key, endpoint string) error {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO escrow_idempotency (caller, key, endpoint)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`,
		caller, key, endpoint)
	if err != nil {
		return fmt.Errorf("reserving idempotency key: %w", mapErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("idempotency key %q: %w", key, domain.ErrConflict)
	}
	return nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, rec ports.IdempotencyRecord) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO escrow_idempotency (caller, key, endpoint, status, body)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (caller, key, endpoint) DO UPDATE SET status = EXCLUDED.status, body = EXCLUDED.body`,
		rec.Caller, rec.Key, rec.Endpoint, rec.Status, rec.Body)
	if err != nil {
		return fmt.Errorf("completing idempotency record: %w", mapErr(err))
	}
	return nil
}

// Release drops the record only while it is still a reservation.
func (s *IdempotencyStore) Release(ctx context.Context, caller, key, endpoint string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM escrow_idempotency
		WHERE caller = $1 AND key = $2 AND endpoint = $3 AND status = 0`,
		caller, key, endpoint)
	if err != nil {
		return fmt.Errorf("releasing idempotency key: %w", mapErr(err))
	}
	return nil
}
