package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time check that IdempotencyStore implements ports.IdempotencyStore.
var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// releaseScript deletes a record only while it is still a reservation.
var releaseScript = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if v and cjson.decode(v).status == 0 then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// IdempotencyStore keeps records as JSON strings that expire after ttl.
type IdempotencyStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore.
func NewIdempotencyStore(rdb redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

type storedRecord struct {
	Status int    `json:"status"`
	Body   []byte `json:"body,omitempty"`
}

func recordKey(caller, key, endpoint string) string {
	return fmt.Sprintf("%sidem:%s:%s:%s", keyPrefix, caller, endpoint, key)
}

func (s *IdempotencyStore) Get(ctx context.Context, caller, key, endpoint string) (*ports.IdempotencyRecord, error) {
	raw, err := s.rdb.Get(ctx, recordKey(caller, key, endpoint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("reading idempotency record", err)
	}

	var r storedRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decoding idempotency record: %w", err)
	}
	return &ports.IdempotencyRecord{Caller: caller, Key: key, Endpoint: endpoint, Status: r.Status, Body: r.Body}, nil
}

func (s *IdempotencyStore) Reserve(ctx context.Context, caller, key, endpoint string) error {
	raw, _ := json.Marshal(storedRecord{})
	ok, err := s.rdb.SetNX(ctx, recordKey(caller, key, endpoint), raw, s.ttl).Result()
	if err != nil {
		return unavailable("reserving idempotency key", err)
	}
	if !ok {
		return fmt.Errorf("idempotency key %q: %w", key, domain.ErrConflict)
	}
	return nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, rec ports.IdempotencyRecord) error {
	raw, err := json.Marshal(storedRecord{Status: rec.Status, Body: rec.Body})
	if err != nil {
		return fmt.Errorf("encoding idempotency record: %w", err)
	}
	if err := s.rdb.Set(ctx, recordKey(rec.Caller, rec.Key, rec.Endpoint), raw, s.ttl).Err(); err != nil {
		return unavailable("completing idempotency record", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, caller, key, endpoint string) error {
	if err := releaseScript.Run(ctx, s.rdb, []string{recordKey(caller, key, endpoint)}).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return unavailable("releasing idempotency key", err)
	}
	return nil
}
