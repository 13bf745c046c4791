// Package main is the entry point for the escrow service. It wires all
// dependencies using samber/do v2, starts the HTTP server and the outbox
// dispatcher, and handles graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/milestone-escrow/internal/adapters/http"
	"github.com/jsamuelsen11/milestone-escrow/internal/app"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/config"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/logging"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/telemetry"
)

const (
	otelShutdownTimeout = 5 * time.Second
	startupTimeout      = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	ctx := context.Background()
	otel := &telemetry.Providers{}
	if cfg.Telemetry.Enabled {
		if otel, err = telemetry.Start(ctx, cfg.Telemetry); err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
	}

	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.Metrics)

	// Resolving the server wires the full graph and opens every connection.
	startCtx, cancelStart := context.WithTimeout(ctx, startupTimeout)
	defer cancelStart()

	var closers closerStack
	defer closers.closeAll(logger)
	registerDependencies(startCtx, injector, cfg, logger, &closers)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	svc := do.MustInvoke[*app.EscrowService](injector)
	if cfg.Escrow.Bootstrap {
		err := svc.Bootstrap(startCtx,
			escrow.AccountID(cfg.Escrow.Freelancer),
			escrow.AccountID(cfg.Escrow.Owner),
			escrow.AccountID(cfg.Escrow.Treasury),
		)
		if err != nil {
			return fmt.Errorf("bootstrapping contract: %w", err)
		}
	}
	cancelStart()

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := server.Run(runCtx)
	if runErr != nil {
		logger.Error("server stopped", slog.Any("error", runErr))
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return runErr
}

// closerStack releases connections in reverse order of opening.
type closerStack struct {
	mu  sync.Mutex
	fns []namedCloser
}

type namedCloser struct {
	name  string
	close func() error
}

func (s *closerStack) push(name string, fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = append(s.fns, namedCloser{name: name, close: fn})
}

func (s *closerStack) closeAll(logger *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.fns) - 1; i >= 0; i-- {
		if err := s.fns[i].close(); err != nil {
			logger.Error("close failed", slog.String("component", s.fns[i].name), slog.Any("error", err))
		}
	}
	s.fns = nil
}
