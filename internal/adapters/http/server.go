package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jsamuelsen11/milestone-escrow/internal/platform/config"
)

const fallbackDrainTimeout = 15 * time.Second

// Worker is a background loop that lives as long as the server, such as
// the outbox dispatcher. Run returns once ctx is canceled.
type Worker interface {
	Run(ctx context.Context)
}

// Server runs the API listener and its workers under one lifetime.
type Server struct {
	srv     *http.Server
	drain   time.Duration
	workers []Worker
	logger  *slog.Logger
}

func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger, workers ...Worker) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	drain := cfg.DrainTimeout
	if drain <= 0 {
		drain = fallbackDrainTimeout
	}
	return &Server{
		srv: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
			ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		drain:   drain,
		workers: workers,
		logger:  logger,
	}
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run listens on Addr and serves until ctx ends. See Serve.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts on ln until ctx ends or the listener fails. Shutdown drains
// in-flight requests for up to the drain timeout before the workers are
// stopped, so nothing committed by a request is left without a dispatcher
// pass. Messages still pending stay in the outbox for the next start.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	workCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	var wg sync.WaitGroup
	for _, w := range s.workers {
		wg.Go(func() { w.Run(workCtx) })
	}
	defer func() {
		stopWorkers()
		wg.Wait()
	}()

	served := make(chan error, 1)
	go func() { served <- s.srv.Serve(ln) }()
	s.logger.InfoContext(ctx, "escrow API listening", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.drain)
	defer cancel()

	s.logger.InfoContext(drainCtx, "draining escrow API", slog.Duration("timeout", s.drain))
	err := s.srv.Shutdown(drainCtx)
	<-served
	if err != nil {
		return fmt.Errorf("draining: %w", err)
	}
	return nil
}
