package main

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/events"
	adapthttp "github.com/jsamuelsen11/milestone-escrow/internal/adapters/http"
	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/storage/postgres"
	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/storage/redisstore"
	"github.com/jsamuelsen11/milestone-escrow/internal/app"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/auth"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/config"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/health"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/httpclient"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/metrics"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/telemetry"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// readinessCheckTimeout bounds each dependency ping on /health/ready.
const readinessCheckTimeout = 2 * time.Second

// registerDependencies declares every provider. Backends are chosen by the
// storage, redis, events and ledger drivers; connections open lazily when
// the server is resolved and are closed through closers.
func registerDependencies(ctx context.Context, injector *do.RootScope, cfg *config.Config, logger *slog.Logger, closers *closerStack) {
	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(readinessCheckTimeout), nil
	})

	do.Provide(injector, func(_ do.Injector) (*metrics.Metrics, error) {
		return metrics.New(), nil
	})

	registerStorage(ctx, injector, cfg, logger, closers)
	registerDelivery(injector, cfg, logger, closers)

	do.Provide(injector, func(i do.Injector) (*app.EscrowService, error) {
		settings, err := escrowSettings(cfg.Escrow)
		if err != nil {
			return nil, err
		}
		return app.NewEscrowService(
			do.MustInvoke[ports.ContractStore](i),
			do.MustInvoke[ports.Outbox](i),
			do.MustInvoke[ports.Transferer](i),
			do.MustInvoke[ports.OperationLocker](i),
			settings,
			do.MustInvoke[*metrics.Metrics](i),
			logger,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.Dispatcher, error) {
		return app.NewDispatcher(
			do.MustInvoke[ports.Outbox](i),
			do.MustInvoke[ports.Transferer](i),
			do.MustInvoke[ports.EventPublisher](i),
			app.DispatcherSettings{
				Interval:    cfg.Dispatcher.Interval,
				BatchSize:   cfg.Dispatcher.BatchSize,
				Workers:     cfg.Dispatcher.Workers,
				MaxAttempts: cfg.Dispatcher.MaxAttempts,
				Backoff:     cfg.Dispatcher.Backoff,
				Lease:       cfg.Dispatcher.Lease,
			},
			do.MustInvoke[*metrics.Metrics](i),
			logger,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.EscrowHandler, error) {
		return handlers.NewEscrowHandler(do.MustInvoke[*app.EscrowService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		return handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		otelMetrics := do.MustInvoke[*telemetry.Metrics](i)
		verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Leeway)

		return adapthttp.NewRouter(adapthttp.Routes{
			Escrow:       do.MustInvoke[*handlers.EscrowHandler](i),
			Health:       do.MustInvoke[*handlers.HealthHandler](i),
			Metrics:      do.MustInvoke[*metrics.Metrics](i).Handler(),
			Authenticate: middleware.Authenticate(verifier),
			Idempotency:  middleware.Idempotency(do.MustInvoke[ports.IdempotencyStore](i)),
		},
			middleware.Recovery(logger),
			middleware.RequestIDs(),
			middleware.AppContext(),
			middleware.Tracing(otelMetrics),
			middleware.AccessLog(logger),
			middleware.Timeout(cfg.Server.RequestTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		var workers []adapthttp.Worker
		if cfg.Dispatcher.Enabled {
			dispatcher, err := do.Invoke[*app.Dispatcher](i)
			if err != nil {
				return nil, err
			}
			workers = append(workers, dispatcher)
		}
		return adapthttp.NewServer(cfg.Server, do.MustInvoke[nethttp.Handler](i), logger, workers...), nil
	})
}

// registerStorage provides the contract store, outbox, operation lock and
// idempotency store. Postgres owns durable state; when redis is enabled it
// takes over locking and idempotency.
func registerStorage(ctx context.Context, injector *do.RootScope, cfg *config.Config, logger *slog.Logger, closers *closerStack) {
	do.Provide(injector, func(i do.Injector) (*pgxpool.Pool, error) {
		pool, err := postgres.Connect(ctx, cfg.Storage, logger)
		if err != nil {
			return nil, err
		}
		closers.push("postgres", func() error { pool.Close(); return nil })

		store := postgres.NewStore(pool)
		do.MustInvoke[ports.HealthRegistry](i).Register(health.Func{ComponentName: "postgres", Check: store.Ping})
		return pool, nil
	})

	do.Provide(injector, func(i do.Injector) (*redis.Client, error) {
		rdb, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		closers.push("redis", rdb.Close)

		do.MustInvoke[ports.HealthRegistry](i).Register(health.Func{
			ComponentName: "redis",
			Check:         func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
		return rdb, nil
	})

	// The in-memory store saves messages into the outbox the dispatcher
	// drains, so both providers share one instance.
	memOutbox := memory.NewOutbox()

	do.Provide(injector, func(i do.Injector) (ports.ContractStore, error) {
		if cfg.Storage.Driver == "postgres" {
			return postgres.NewStore(do.MustInvoke[*pgxpool.Pool](i)), nil
		}
		return memory.NewStore(memOutbox), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.Outbox, error) {
		if cfg.Storage.Driver == "postgres" {
			return postgres.NewOutbox(do.MustInvoke[*pgxpool.Pool](i)), nil
		}
		return memOutbox, nil
	})

	do.Provide(injector, func(i do.Injector) (ports.OperationLocker, error) {
		switch {
		case cfg.Redis.Enabled:
			rdb, err := do.Invoke[*redis.Client](i)
			if err != nil {
				return nil, err
			}
			return redisstore.NewLocker(rdb, cfg.Redis.LockTTL, cfg.Redis.LockRetry, logger), nil
		case cfg.Storage.Driver == "postgres":
			return postgres.NewAdvisoryLocker(do.MustInvoke[*pgxpool.Pool](i), logger), nil
		default:
			return memory.NewLocker(), nil
		}
	})

	do.Provide(injector, func(i do.Injector) (ports.IdempotencyStore, error) {
		switch {
		case cfg.Redis.Enabled:
			rdb, err := do.Invoke[*redis.Client](i)
			if err != nil {
				return nil, err
			}
			return redisstore.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL), nil
		case cfg.Storage.Driver == "postgres":
			return postgres.NewIdempotencyStore(do.MustInvoke[*pgxpool.Pool](i)), nil
		default:
			return memory.NewIdempotencyStore(), nil
		}
	})
}

// registerDelivery provides the ledger deposits are collected through and
// the dispatcher delivers to, plus the event sink.
func registerDelivery(injector *do.RootScope, cfg *config.Config, logger *slog.Logger, closers *closerStack) {
	do.Provide(injector, func(i do.Injector) (ports.Transferer, error) {
		if cfg.Ledger.Driver != "http" {
			ledger, err := seededLedger(cfg.Ledger.Seed, logger)
			if err != nil {
				return nil, err
			}
			return ledger, nil
		}
		client := httpclient.New(&cfg.Ledger.Client, "ledger", do.MustInvoke[*telemetry.Metrics](i), logger)
		ledger := acl.NewLedgerClient(client, logger)
		do.MustInvoke[ports.HealthRegistry](i).Register(health.Optional(ledger))
		return ledger, nil
	})

	do.Provide(injector, func(i do.Injector) (ports.EventPublisher, error) {
		if cfg.Events.Driver != "rabbitmq" {
			return events.NewLogPublisher(logger), nil
		}
		pub, err := events.DialRabbit(cfg.Events.URL, cfg.Events.Exchange, logger)
		if err != nil {
			return nil, err
		}
		closers.push("rabbitmq", pub.Close)
		do.MustInvoke[ports.HealthRegistry](i).Register(health.Optional(pub))
		return pub, nil
	})
}

// seededLedger returns a memory ledger holding the configured opening
// balances.
func seededLedger(seed []config.LedgerSeed, logger *slog.Logger) (*memory.Ledger, error) {
	ledger := memory.NewLedger(logger)
	for _, s := range seed {
		amount, err := escrow.ParseAmount(s.Amount)
		if err != nil {
			return nil, fmt.Errorf("ledger.seed %s: %w", s.Account, err)
		}
		if err := ledger.Credit(escrow.AccountID(s.Account), amount); err != nil {
			return nil, err
		}
		logger.Info("ledger account seeded",
			slog.String("account", s.Account),
			slog.String("amount", amount.String()),
		)
	}
	return ledger, nil
}

// escrowSettings converts the escrow config section. Validate has already
// checked the decimal fields, so parse errors only surface for values that
// overflow 256 bits.
func escrowSettings(c config.EscrowConfig) (app.EscrowSettings, error) {
	byteCost, err := escrow.ParseAmount(c.StorageByteCost)
	if err != nil {
		return app.EscrowSettings{}, fmt.Errorf("escrow.storage_byte_cost: %w", err)
	}
	maxDust, err := escrow.ParseAmount(c.MaxDust)
	if err != nil {
		return app.EscrowSettings{}, fmt.Errorf("escrow.max_dust: %w", err)
	}
	return app.EscrowSettings{
		Self:     escrow.AccountID(c.AccountID),
		ByteCost: byteCost,
		Policy: escrow.Policy{
			ClientFeeBps:     uint16(c.ClientFeeBps),     //nolint:gosec // bounded by config validation
			FreelancerFeeBps: uint16(c.FreelancerFeeBps), //nolint:gosec // bounded by config validation
			MaxDust:          maxDust,
		},
	}, nil
}
