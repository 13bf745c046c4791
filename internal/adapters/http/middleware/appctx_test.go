package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/http/middleware"
	appctx "github.com/jsamuelsen11/milestone-escrow/internal/app/context"
)

func TestAppContext_FreshPerRequest(t *testing.T) {
	t.Parallel()

	var seen []*appctx.RequestContext
	handler := middleware.AppContext()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = append(seen, appctx.FromContext(r.Context()))
	}))

	for range 2 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	}

	if len(seen) != 2 || seen[0] == nil || seen[1] == nil {
		t.Fatalf("request contexts = %v, want two non-nil", seen)
	}
	if seen[0] == seen[1] {
		t.Error("request context reused across requests")
	}
}
