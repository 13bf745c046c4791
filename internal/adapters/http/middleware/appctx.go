package middleware

import (
	"net/http"

	appctx "github.com/jsamuelsen11/milestone-escrow/internal/app/context"
)

// AppContext gives each request a fresh appctx.RequestContext so the escrow
// service can memoize the contract across the reads of one request.
func AppContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := appctx.New(r.Context())
			next.ServeHTTP(w, r.WithContext(appctx.WithRequestContext(r.Context(), rc)))
		})
	}
}
