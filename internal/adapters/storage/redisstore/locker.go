package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time check that Locker implements ports.OperationLocker.
var _ ports.OperationLocker = (*Locker)(nil)

const lockKey = keyPrefix + "operation-lock"

// unlockScript deletes the lock only if this holder still owns it.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a lease lock: SET NX with a TTL, polled until acquired. A
// holder that outlives the TTL loses the lock, so the TTL must exceed the
// longest operation.
type Locker struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	retry  time.Duration
	logger *slog.Logger
}

// NewLocker creates a Locker.
func NewLocker(rdb redis.Cmdable, ttl, retry time.Duration, logger *slog.Logger) *Locker {
	return &Locker{rdb: rdb, ttl: ttl, retry: retry, logger: logger}
}

// Lock polls until the lease is taken or ctx is done.
func (l *Locker) Lock(ctx context.Context) (func(), error) {
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.rdb.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, unavailable("taking operation lock", err)
		}
		if ok {
			return func() { l.unlock(ctx, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for operation lock: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *Locker) unlock(ctx context.Context, token string) {
	ctx = context.WithoutCancel(ctx)
	n, err := unlockScript.Run(ctx, l.rdb, []string{lockKey}, token).Int()
	switch {
	case err != nil:
		l.logger.ErrorContext(ctx, "operation unlock failed",
			slog.String("operation", "Locker.unlock"),
			slog.Any("error", err),
		)
	case n == 0:
		l.logger.WarnContext(ctx, "operation lock expired before unlock",
			slog.String("operation", "Locker.unlock"),
			slog.Duration("ttl", l.ttl),
		)
	}
}
