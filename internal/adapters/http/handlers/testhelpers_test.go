package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/auth"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

const (
	ownerID      escrow.AccountID = "owner.test"
	treasuryID   escrow.AccountID = "treasury.test"
	freelancerID escrow.AccountID = "freelancer.test"
	clientID     escrow.AccountID = "client.test"
)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newRequest builds a request acting as caller. An empty caller leaves the
// request unauthenticated.
func newRequest(method, target string, body io.Reader, caller escrow.AccountID) *http.Request {
	r := httptest.NewRequest(method, target, body)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if caller != "" {
		r = r.WithContext(auth.WithCaller(r.Context(), caller))
	}
	return r
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func summary(state escrow.ProjectState) *ports.ProjectSummary {
	return &ports.ProjectSummary{
		Owner:            ownerID,
		Treasury:         treasuryID,
		Freelancer:       freelancerID,
		State:            state,
		ClientFeeBps:     200,
		FreelancerFeeBps: 300,
		HeldBalance:      escrow.Zero,
		SpendableBalance: escrow.Zero,
	}
}
