package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time check that Store implements ports.ContractStore.
var _ ports.ContractStore = (*Store)(nil)

// Store keeps the contract in the escrow_contract table.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a Store on pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

func (s *Store) Load(ctx context.Context) (*escrow.Contract, error) {
	var body []byte
	if err := s.db.QueryRow(ctx, `SELECT body FROM escrow_contract WHERE id = 1`).Scan(&body); err != nil {
		return nil, fmt.Errorf("loading contract: %w", mapErr(err))
	}

	var c escrow.Contract
	if err := json.Unmarshal(body, &c); err != nil {
		return nil, fmt.Errorf("decoding contract: %w", err)
	}
	return &c, nil
}

func (s *Store) Create(ctx context.Context, c *escrow.Contract) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding contract: %w", err)
	}
	if _, err := s.db.Exec(ctx, `INSERT INTO escrow_contract (id, body) VALUES (1, $1)`, body); err != nil {
		return fmt.Errorf("creating contract: %w", mapErr(err))
	}
	return nil
}

// Save updates the contract row and inserts msgs into escrow_outbox in one
// transaction.
func (s *Store) Save(ctx context.Context, c *escrow.Contract, msgs ...ports.OutboxMessage) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding contract: %w", err)
	}

	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE escrow_contract SET body = $1, updated_at = NOW() WHERE id = 1`, body)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return insertMessages(ctx, tx, msgs)
	})
	if err != nil {
		return fmt.Errorf("saving contract with %d messages: %w", len(msgs), mapErr(err))
	}
	return nil
}

// Usage is the stored size of the contract row's body.
func (s *Store) Usage(ctx context.Context) (uint64, error) {
	var n int64
	err := s.db.QueryRow(ctx, `SELECT COALESCE(SUM(pg_column_size(body)), 0) FROM escrow_contract`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reading storage usage: %w", mapErr(err))
	}
	return uint64(n), nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return mapErr(s.db.Ping(ctx))
}
