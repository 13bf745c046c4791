package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/auth"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/logging"
)

// TokenVerifier resolves a bearer token to the calling account.
type TokenVerifier interface {
	Verify(token string) (escrow.AccountID, error)
}

// Authenticate returns middleware that requires a valid bearer token. The
// verified caller is stored with auth.WithCaller and added to the request
// logger. Missing or invalid tokens get a 401 problem response.
func Authenticate(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			caller, err := v.Verify(auth.ExtractBearer(r.Header.Get("Authorization")))
			if err != nil {
				logging.FromContext(ctx).InfoContext(ctx, "authentication failed",
					slog.String("path", r.URL.Path),
					slog.Any("error", err),
				)
				dto.WriteError(w, r, err)
				return
			}

			ctx = auth.WithCaller(ctx, caller)
			ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With(slog.String("caller", caller.String())))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
