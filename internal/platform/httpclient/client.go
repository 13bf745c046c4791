// Package httpclient is the outbound HTTP stack used for the value ledger.
// Each call passes through, in order:
//
//	breaker → rate limit → header propagation → client span → retry loop
//
// A retryable failure only trips the breaker once every attempt is spent.
// Unsafe methods are replayed only when they carry an Idempotency-Key.
package httpclient

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/milestone-escrow/internal/platform/config"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/telemetry"
)

// Client calls a single downstream service.
type Client struct {
	http    *http.Client
	baseURL string
	peer    string
	breaker *gobreaker.CircuitBreaker[struct{}]
	limiter *rate.Limiter
	policy  retryPolicy
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New builds a Client for the downstream named peer. metrics may be nil.
func New(cfg *config.ClientConfig, peer string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		peer:    peer,
		policy: retryPolicy{
			attempts:   max(cfg.Retry.MaxAttempts, 1),
			initial:    cfg.Retry.InitialInterval,
			ceiling:    cfg.Retry.MaxInterval,
			multiplier: cfg.Retry.Multiplier,
		},
		metrics: metrics,
		logger:  logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        peer,
		MaxRequests: clampUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("ledger circuit breaker changed state",
				slog.String("peer_service", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	if rps := cfg.RateLimit.RequestsPerSecond; rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), cfg.RateLimit.BurstSize)
	}

	return c
}

// Do sends req. On success the caller owns resp.Body. When the last attempt
// still gets a retryable status, Do returns that response together with an
// error and the caller must close it. Transport failures and breaker
// rejections return a nil response.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return struct{}{}, err
			}
		}

		spanCtx, span := c.startSpan(ctx, req)
		defer span.End()

		out := req.WithContext(spanCtx)
		propagate(spanCtx, out)

		var attempts int
		var err error
		resp, attempts, err = c.send(spanCtx, out)
		endSpan(span, resp, attempts, err)
		return struct{}{}, err
	})

	c.observe(ctx, req.Method, resp, err, time.Since(start))
	return resp, err
}

// BaseURL is the configured root of the downstream API.
func (c *Client) BaseURL() string { return c.baseURL }

// BreakerState is "closed", "half-open" or "open".
func (c *Client) BreakerState() string { return c.breaker.State().String() }

// Name identifies the downstream in health reports.
func (c *Client) Name() string { return c.peer }

// HealthCheck reports the breaker state without touching the network.
func (c *Client) HealthCheck(context.Context) error {
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded, circuit breaker half-open", c.peer)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing, circuit breaker open", c.peer)
	default:
		return fmt.Errorf("%s: circuit breaker in state %v", c.peer, state)
	}
}

func clampUint32(v int) uint32 {
	switch {
	case v <= 0:
		return 0
	case v > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(v)
	}
}
