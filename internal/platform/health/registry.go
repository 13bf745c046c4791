// Package health tracks the dependencies behind the readiness check.
//
// Postgres and redis are required: the service cannot take a mutation
// without them. The ledger and the event broker are wrapped in Optional
// because the outbox holds their work until they return.
package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

var (
	_ ports.HealthRegistry = (*Registry)(nil)
	_ ports.HealthChecker  = Func{}
	_ ports.HealthChecker  = optional{}
)

// ErrDegraded wraps the failure of an Optional dependency.
var ErrDegraded = errors.New("degraded")

// Registry runs every registered check concurrently, each bounded by the
// registry timeout.
type Registry struct {
	timeout time.Duration

	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// New returns an empty Registry. A timeout of zero leaves checks bounded
// only by the caller's context.
func New(timeout time.Duration) *Registry {
	return &Registry{timeout: timeout}
}

// Register adds checker. A later checker with the same name replaces the
// earlier one in results.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	r.checkers = append(r.checkers, checker)
	r.mu.Unlock()
}

// CheckAll returns one entry per checker name; nil means healthy.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := append([]ports.HealthChecker(nil), r.checkers...)
	r.mu.RUnlock()

	errs := make([]error, len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Go(func() { errs[i] = r.check(ctx, c) })
	}
	wg.Wait()

	out := make(map[string]error, len(checkers))
	for i, c := range checkers {
		out[c.Name()] = errs[i]
	}
	return out
}

func (r *Registry) check(ctx context.Context, c ports.HealthChecker) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return c.HealthCheck(ctx)
}

// Func turns a ping function into a checker.
type Func struct {
	ComponentName string
	Check         func(ctx context.Context) error
}

func (f Func) Name() string { return f.ComponentName }

func (f Func) HealthCheck(ctx context.Context) error { return f.Check(ctx) }

// Optional reports the failures of c as ErrDegraded. Readiness lists them
// but still answers ready.
func Optional(c ports.HealthChecker) ports.HealthChecker {
	return optional{c}
}

type optional struct{ ports.HealthChecker }

func (o optional) HealthCheck(ctx context.Context) error {
	if err := o.HealthChecker.HealthCheck(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrDegraded, err)
	}
	return nil
}
