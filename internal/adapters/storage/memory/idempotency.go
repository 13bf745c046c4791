package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time check that IdempotencyStore implements ports.IdempotencyStore.
var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

type idempotencyKey struct {
	caller, key, endpoint string
}

// IdempotencyStore keeps idempotency records for the life of the process.
type IdempotencyStore struct {
	mu      sync.Mutex
	records map[idempotencyKey]ports.IdempotencyRecord
}

// NewIdempotencyStore returns an empty store.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{records: make(map[idempotencyKey]ports.IdempotencyRecord)}
}

func (s *IdempotencyStore) Get(_ context.Context, caller, key, endpoint string) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[idempotencyKey{caller, key, endpoint}]
	if !ok {
		return nil, nil
	}
	rec.Body = slices.Clone(rec.Body)
	return &rec, nil
}

func (s *IdempotencyStore) Reserve(_ context.Context, caller, key, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := idempotencyKey{caller, key, endpoint}
	if _, ok := s.records[k]; ok {
		return fmt.Errorf("idempotency key %q: %w", key, domain.ErrConflict)
	}
	s.records[k] = ports.IdempotencyRecord{Caller: caller, Key: key, Endpoint: endpoint}
	return nil
}

func (s *IdempotencyStore) Complete(_ context.Context, rec ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.Body = slices.Clone(rec.Body)
	s.records[idempotencyKey{rec.Caller, rec.Key, rec.Endpoint}] = rec
	return nil
}

// Release drops the record only while it is still a reservation.
func (s *IdempotencyStore) Release(_ context.Context, caller, key, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := idempotencyKey{caller, key, endpoint}
	if rec, ok := s.records[k]; ok && rec.InFlight() {
		delete(s.records, k)
	}
	return nil
}
