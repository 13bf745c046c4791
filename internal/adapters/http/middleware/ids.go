package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/milestone-escrow/internal/platform/httpclient"
)

// Tracing headers accepted from clients and echoed on every response.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

const maxIDLength = 128

type idsKey struct{}

type requestIDs struct {
	request     string
	correlation string
}

// RequestIDs assigns each request a request ID and a correlation ID. Client
// supplied values are kept when they are short printable tokens; otherwise a
// UUIDv7 is generated. The correlation ID defaults to the request ID. Both
// are echoed as response headers and forwarded on outbound ledger calls.
func RequestIDs() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ids := requestIDs{request: acceptID(r.Header.Get(HeaderRequestID))}
			if ids.request == "" {
				ids.request = newID()
			}
			ids.correlation = acceptID(r.Header.Get(HeaderCorrelationID))
			if ids.correlation == "" {
				ids.correlation = ids.request
			}

			w.Header().Set(HeaderRequestID, ids.request)
			w.Header().Set(HeaderCorrelationID, ids.correlation)

			ctx := context.WithValue(r.Context(), idsKey{}, ids)
			ctx = httpclient.WithRequestID(ctx, ids.request)
			ctx = httpclient.WithCorrelationID(ctx, ids.correlation)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the request ID, or "" outside RequestIDs.
func RequestIDFromContext(ctx context.Context) string {
	ids, _ := ctx.Value(idsKey{}).(requestIDs)
	return ids.request
}

// CorrelationIDFromContext returns the correlation ID, or "" outside
// RequestIDs.
func CorrelationIDFromContext(ctx context.Context) string {
	ids, _ := ctx.Value(idsKey{}).(requestIDs)
	return ids.correlation
}

// acceptID returns s if it is safe to log and echo, else "".
func acceptID(s string) string {
	if s == "" || len(s) > maxIDLength {
		return ""
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return ""
		}
	}
	return s
}

func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
