package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/auth"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/httpclient"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/logging"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

const (
	headerReplayed    = "Idempotent-Replayed"
	maxIdempotencyKey = 255
)

// Idempotency returns middleware that makes keyed mutating requests safe to
// retry. It must run after Authenticate.
//
// A request carrying an Idempotency-Key header reserves the key for its
// (caller, key, method+path) scope, runs, and stores the response. A repeat
// gets the stored status and body without running the handler again. A
// repeat that arrives while the first is still running gets 409. Responses
// with a 5xx status are not stored, so the client may retry them. Requests
// without the header pass straight through.
func Idempotency(store ports.IdempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(httpclient.IdempotencyKeyHeader)
			caller, ok := auth.CallerFromContext(r.Context())
			if key == "" || !ok {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKey {
				dto.WriteError(w, r, &domain.ValidationError{Fields: map[string]string{
					"header.Idempotency-Key": fmt.Sprintf("must be at most %d bytes", maxIdempotencyKey),
				}})
				return
			}

			ctx := r.Context()
			logger := logging.FromContext(ctx)
			endpoint := r.Method + " " + r.URL.Path

			rec, err := store.Get(ctx, caller.String(), key, endpoint)
			if err != nil {
				dto.WriteError(w, r, err)
				return
			}
			if rec != nil {
				replay(w, r, rec)
				return
			}

			if err := store.Reserve(ctx, caller.String(), key, endpoint); err != nil {
				if errors.Is(err, domain.ErrConflict) {
					err = fmt.Errorf("request with this idempotency key is in progress: %w", domain.ErrConflict)
				}
				dto.WriteError(w, r, err)
				return
			}

			cw := &capturingWriter{ResponseWriter: w, status: http.StatusOK}
			completed := false
			defer func() {
				if completed {
					return
				}
				// Panics and 5xx leave the key free for a retry.
				if err := store.Release(context.WithoutCancel(ctx), caller.String(), key, endpoint); err != nil {
					logger.WarnContext(ctx, "idempotency release failed",
						slog.String("operation", "Idempotency.Release"),
						slog.String("endpoint", endpoint),
						slog.Any("error", err),
					)
				}
			}()

			next.ServeHTTP(cw, r)

			if cw.status >= http.StatusInternalServerError {
				return
			}
			// The operation ran. If completion fails the reservation stays and
			// blocks retries rather than risk a second apply.
			completed = true
			err = store.Complete(context.WithoutCancel(ctx), ports.IdempotencyRecord{
				Caller:   caller.String(),
				Key:      key,
				Endpoint: endpoint,
				Status:   cw.status,
				Body:     cw.body.Bytes(),
			})
			if err != nil {
				logger.ErrorContext(ctx, "idempotency completion failed",
					slog.String("operation", "Idempotency.Complete"),
					slog.String("endpoint", endpoint),
					slog.Any("error", err),
				)
			}
		})
	}
}

func replay(w http.ResponseWriter, r *http.Request, rec *ports.IdempotencyRecord) {
	if rec.InFlight() {
		dto.WriteError(w, r,
			fmt.Errorf("request with this idempotency key is in progress: %w", domain.ErrConflict))
		return
	}

	w.Header().Set(headerReplayed, "true")
	if len(rec.Body) > 0 {
		ct := "application/json"
		if rec.Status >= http.StatusBadRequest {
			ct = dto.ProblemContentType
		}
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(rec.Status)
	_, _ = w.Write(rec.Body)
}

// capturingWriter tees the response to the client and a buffer.
type capturingWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (c *capturingWriter) WriteHeader(code int) {
	if c.wroteHeader {
		return
	}
	c.status = code
	c.wroteHeader = true
	c.ResponseWriter.WriteHeader(code)
}

func (c *capturingWriter) Write(b []byte) (int, error) {
	c.wroteHeader = true
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

func (c *capturingWriter) Unwrap() http.ResponseWriter {
	return c.ResponseWriter
}
