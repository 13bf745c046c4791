package redisstore_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/storage/redisstore"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/config"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb, err := redisstore.NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewClient_Unreachable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := redisstore.NewClient(context.Background(), config.RedisConfig{Addr: addr}); err == nil {
		t.Error("NewClient() error = nil for a closed server")
	}
}

func TestLocker(t *testing.T) {
	t.Parallel()

	_, rdb := newRedis(t)
	l := redisstore.NewLocker(rdb, time.Minute, 5*time.Millisecond, discard())

	unlock, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Lock() while held error = %v, want DeadlineExceeded", err)
	}

	acquired := make(chan struct{})
	go func() {
		unlock2, err := l.Lock(context.Background())
		if err == nil {
			unlock2()
		}
		close(acquired)
	}()

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter did not acquire the lock after unlock")
	}
}

func TestLocker_ExpiredLeaseIsNotStolenBack(t *testing.T) {
	t.Parallel()

	mr, rdb := newRedis(t)
	l := redisstore.NewLocker(rdb, time.Second, 5*time.Millisecond, discard())

	unlock, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	mr.FastForward(2 * time.Second)

	unlock2, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock() after expiry error = %v", err)
	}

	// The first holder's unlock must not release the second holder's lease.
	unlock()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx); err == nil {
		t.Error("Lock() succeeded while the second lease is held")
	}
	unlock2()
}

func TestIdempotencyStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, rdb := newRedis(t)
	s := redisstore.NewIdempotencyStore(rdb, time.Hour)

	if rec, err := s.Get(ctx, "client", "k", "fund"); rec != nil || err != nil {
		t.Fatalf("Get() = %v, %v; want nil, nil", rec, err)
	}
	if err := s.Reserve(ctx, "client", "k", "fund"); err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}
	if err := s.Reserve(ctx, "client", "k", "fund"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second Reserve() error = %v, want ErrConflict", err)
	}

	rec, err := s.Get(ctx, "client", "k", "fund")
	if err != nil || rec == nil || !rec.InFlight() {
		t.Fatalf("Get() = %+v, %v; want in-flight reservation", rec, err)
	}

	if err := s.Complete(ctx, ports.IdempotencyRecord{Caller: "client", Key: "k", Endpoint: "fund", Status: 201, Body: []byte(`{"id":1}`)}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if err := s.Release(ctx, "client", "k", "fund"); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	rec, _ = s.Get(ctx, "client", "k", "fund")
	if rec == nil || rec.Status != 201 || string(rec.Body) != `{"id":1}` {
		t.Errorf("Get() = %+v, want completed record kept across Release", rec)
	}

	mr.FastForward(2 * time.Hour)
	if rec, _ := s.Get(ctx, "client", "k", "fund"); rec != nil {
		t.Errorf("Get() after ttl = %+v, want nil", rec)
	}
}

func TestIdempotencyStore_ReleaseReservation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, rdb := newRedis(t)
	s := redisstore.NewIdempotencyStore(rdb, time.Hour)

	_ = s.Reserve(ctx, "client", "k", "fund")
	if err := s.Release(ctx, "client", "k", "fund"); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := s.Reserve(ctx, "client", "k", "fund"); err != nil {
		t.Errorf("Reserve() after Release error = %v", err)
	}
}
