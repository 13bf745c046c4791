package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/milestone-escrow/internal/platform/logging"
)

// jitter spreads each delay by up to ±25%.
const jitter = 0.25

type retryPolicy struct {
	attempts   int
	initial    time.Duration
	ceiling    time.Duration
	multiplier float64
}

// delay is the wait before retry n (1 for the first retry). A Retry-After
// from the failed response wins over the computed backoff but never exceeds
// the ceiling.
func (p retryPolicy) delay(n int, resp *http.Response, now time.Time) time.Duration {
	if resp != nil {
		if d, ok := retryAfter(resp.Header.Get("Retry-After"), now); ok {
			return min(d, p.ceiling)
		}
	}

	d := min(float64(p.initial)*math.Pow(p.multiplier, float64(n-1)), float64(p.ceiling))
	d += d * jitter * (2*rand.Float64() - 1) //nolint:gosec // jitter, not a secret
	return time.Duration(max(d, 0))
}

// retryAfter parses either form of the Retry-After header.
func retryAfter(v string, now time.Time) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(at.Sub(now), 0), true
	}
	return 0, false
}

// send runs the retry loop and reports how many attempts it made.
func (c *Client) send(ctx context.Context, req *http.Request) (*http.Response, int, error) {
	rewind, err := rewinder(req)
	if err != nil {
		return nil, 0, err
	}

	attempts := c.policy.attempts
	if !replayable(req) {
		attempts = 1
	}

	var (
		last    *http.Response
		lastErr error
	)
	for n := range attempts {
		if n > 0 {
			wait := c.policy.delay(n, last, time.Now())
			if last != nil {
				discard(last)
			}
			if err := c.pause(ctx, req, n+1, wait, lastErr); err != nil {
				return nil, n, err
			}
		}
		if err := rewind(); err != nil {
			return nil, n, err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if !retryableErr(err) {
				return nil, n + 1, err
			}
			last, lastErr = nil, err
			continue
		}
		if !retryableStatus(resp.StatusCode) {
			return resp, n + 1, nil
		}
		last, lastErr = resp, fmt.Errorf("%s answered %d", c.peer, resp.StatusCode)
	}
	return last, attempts, lastErr
}

// pause logs the upcoming retry and sleeps unless ctx ends first.
func (c *Client) pause(ctx context.Context, req *http.Request, attempt int, wait time.Duration, cause error) error {
	logging.FromContext(ctx).WarnContext(ctx, "retrying ledger request",
		slog.String("peer_service", c.peer),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("attempt", attempt),
		slog.Int("max_attempts", c.policy.attempts),
		slog.Duration("wait", wait),
		slog.Any("error", cause),
	)

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// replayable: safe and idempotent methods always, others only with a key.
func replayable(req *http.Request) bool {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	}
	return req.Header.Get(IdempotencyKeyHeader) != ""
}

// rewinder returns a func that resets req.Body before each attempt.
func rewinder(req *http.Request) (func() error, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return func() error { return nil }, nil
	}
	if req.GetBody != nil {
		first := true
		return func() error {
			if first {
				first = false
				return nil
			}
			body, err := req.GetBody()
			if err != nil {
				return fmt.Errorf("rewinding request body: %w", err)
			}
			req.Body = body
			return nil
		}, nil
	}

	buf, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("buffering request body: %w", err)
	}
	return func() error {
		req.Body = io.NopCloser(bytes.NewReader(buf))
		req.ContentLength = int64(len(buf))
		return nil
	}, nil
}

// discard drains resp so its connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// retryableErr is false only for a cancelled or expired caller context.
func retryableErr(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
