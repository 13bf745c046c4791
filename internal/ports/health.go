package ports

import "context"

// HealthChecker is a dependency readiness can check: the contract store, the
// lock and idempotency backend, the ledger or the event broker.
type HealthChecker interface {
	// Name keys the result, e.g. "postgres" or "ledger".
	Name() string

	// HealthCheck returns nil when the dependency is usable. It must honour
	// ctx's deadline.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers at startup and runs them per readiness request.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll maps each checker name to its result; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}
