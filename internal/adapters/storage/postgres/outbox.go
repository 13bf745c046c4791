package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time check that Outbox implements ports.Outbox.
var _ ports.Outbox = (*Outbox)(nil)

// Outbox stores messages in the escrow_outbox table.
type Outbox struct {
	db *pgxpool.Pool
}

// NewOutbox creates an Outbox on pool.
func NewOutbox(pool *pgxpool.Pool) *Outbox {
	return &Outbox{db: pool}
}

// insertMessages queues msgs as pending inside tx. Store.Save calls it so
// the messages commit with the contract they describe.
func insertMessages(ctx context.Context, tx pgx.Tx, msgs []ports.OutboxMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, m := range msgs {
		batch.Queue(`
			INSERT INTO escrow_outbox (id, kind, topic, payload, status, next_attempt_at, created_at)
			VALUES ($1, $2, $3, $4, 'pending', $5, $6)`,
			m.ID, string(m.Kind), m.Topic, m.Payload, m.NextAttempt, m.CreatedAt,
		)
	}
	return tx.SendBatch(ctx, batch).Close()
}

func (o *Outbox) Discard(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := o.db.Exec(ctx, `DELETE FROM escrow_outbox WHERE id = ANY($1::uuid[])`, ids); err != nil {
		return fmt.Errorf("discarding messages: %w", mapErr(err))
	}
	return nil
}

// Claim locks due rows with SKIP LOCKED, so concurrent dispatchers take
// disjoint batches, and pushes their next attempt out by lease before
// committing. A dispatcher that dies mid-batch leaves its rows due again
// once the lease runs out.
func (o *Outbox) Claim(ctx context.Context, limit int, lease time.Duration) ([]ports.OutboxMessage, error) {
	var (
		msgs []ports.OutboxMessage
		lim  any
	)
	if limit > 0 {
		lim = limit
	}

	err := pgx.BeginFunc(ctx, o.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id::text, kind, topic, payload, status, attempts, last_error, next_attempt_at, created_at
			FROM escrow_outbox
			WHERE status = 'pending' AND next_attempt_at <= NOW()
			ORDER BY created_at, id
			LIMIT $1
			FOR UPDATE SKIP LOCKED`, lim)
		if err != nil {
			return err
		}
		msgs, err = pgx.CollectRows(rows, scanMessage)
		if err != nil || len(msgs) == 0 {
			return err
		}

		ids := make([]string, len(msgs))
		for i, m := range msgs {
			ids[i] = m.ID
		}
		_, err = tx.Exec(ctx, `
			UPDATE escrow_outbox
			SET next_attempt_at = NOW() + make_interval(secs => $2), updated_at = NOW()
			WHERE id = ANY($1::uuid[])`, ids, lease.Seconds())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("claiming pending messages: %w", mapErr(err))
	}
	return msgs, nil
}

func scanMessage(row pgx.CollectableRow) (ports.OutboxMessage, error) {
	var (
		m            ports.OutboxMessage
		kind, status string
	)
	err := row.Scan(&m.ID, &kind, &m.Topic, &m.Payload, &status, &m.Attempts, &m.LastError, &m.NextAttempt, &m.CreatedAt)
	m.Kind = ports.MessageKind(kind)
	m.Status = ports.MessageStatus(status)
	return m, err
}

func (o *Outbox) MarkSent(ctx context.Context, id string) error {
	tag, err := o.db.Exec(ctx, `
		UPDATE escrow_outbox SET status = 'sent', last_error = '', updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marking %s sent: %w", id, mapErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("marking %s sent: %w", id, mapErr(pgx.ErrNoRows))
	}
	return nil
}

// MarkFailed increments attempts in place; the status flips to failed in the
// same statement once the limit is reached.
func (o *Outbox) MarkFailed(ctx context.Context, id string, cause error, maxAttempts int, next time.Time) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	tag, err := o.db.Exec(ctx, `
		UPDATE escrow_outbox SET
			attempts        = attempts + 1,
			last_error      = $2,
			status          = CASE WHEN attempts + 1 >= $3 THEN 'failed' ELSE 'pending' END,
			next_attempt_at = $4,
			updated_at      = NOW()
		WHERE id = $1`, id, msg, maxAttempts, next)
	if err != nil {
		return fmt.Errorf("marking %s failed: %w", id, mapErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("marking %s failed: %w", id, mapErr(pgx.ErrNoRows))
	}
	return nil
}
