package memory

import (
	"context"
	"sync"

	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time check that Locker implements ports.OperationLocker.
var _ ports.OperationLocker = (*Locker)(nil)

// Locker is a process-local operation lock that honors cancellation while
// waiting.
type Locker struct {
	sem chan struct{}
}

// NewLocker returns an unlocked Locker.
func NewLocker() *Locker {
	return &Locker{sem: make(chan struct{}, 1)}
}

// Lock blocks until the lock is free or ctx is done.
func (l *Locker) Lock(ctx context.Context) (func(), error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	var once sync.Once
	return func() { once.Do(func() { <-l.sem }) }, nil
}
