package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time check that Store implements ports.ContractStore.
var _ ports.ContractStore = (*Store)(nil)

// Store keeps the encoded contract in memory. Holding the encoding rather
// than the struct gives Usage the same meaning as in the Postgres store and
// isolates callers from each other's copies.
type Store struct {
	mu     sync.RWMutex
	data   []byte
	outbox *Outbox
}

// NewStore returns an empty Store that enqueues saved messages on outbox.
// outbox may be nil when no caller saves messages.
func NewStore(outbox *Outbox) *Store {
	return &Store{outbox: outbox}
}

func (s *Store) snapshot() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Load returns domain.ErrNotFound before Create.
func (s *Store) Load(_ context.Context) (*escrow.Contract, error) {
	b := s.snapshot()
	if b == nil {
		return nil, fmt.Errorf("contract: %w", domain.ErrNotFound)
	}
	var c escrow.Contract
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decoding contract: %w", err)
	}
	return &c, nil
}

// Create stores c unless a contract already exists.
func (s *Store) Create(_ context.Context, c *escrow.Contract) error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding contract: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data != nil {
		return fmt.Errorf("contract: %w", domain.ErrConflict)
	}
	s.data = b
	return nil
}

// Save replaces the stored contract and enqueues msgs while holding the
// store lock. A rejected batch leaves the contract as it was.
func (s *Store) Save(ctx context.Context, c *escrow.Contract, msgs ...ports.OutboxMessage) error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding contract: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return fmt.Errorf("contract: %w", domain.ErrNotFound)
	}
	if len(msgs) > 0 {
		if s.outbox == nil {
			return fmt.Errorf("saving %d messages: no outbox: %w", len(msgs), domain.ErrUnavailable)
		}
		if err := s.outbox.Enqueue(ctx, msgs...); err != nil {
			return fmt.Errorf("saving contract: %w", err)
		}
	}
	s.data = b
	return nil
}

// Usage returns the length of the stored encoding, or zero before Create.
func (s *Store) Usage(_ context.Context) (uint64, error) {
	return uint64(len(s.snapshot())), nil
}
