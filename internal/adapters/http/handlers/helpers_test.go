package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
)

type fundBody struct {
	Deposit string `json:"deposit"`
	Count   int    `json:"count"`
}

func (fundBody) Validate() error { return nil }

func TestDecodeBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{name: "valid", body: `{"deposit":"10"}`},
		{name: "empty", body: ``, wantField: "body", wantMsg: "must not be empty"},
		{name: "truncated", body: `{"deposit":`, wantField: "body", wantMsg: "malformed JSON"},
		{name: "syntax", body: `{"deposit" "10"}`, wantField: "body", wantMsg: "offset"},
		{name: "wrong type", body: `{"count":"many"}`, wantField: "count", wantMsg: "must be a int"},
		{name: "unknown field", body: `{"deposit":"1","admin":true}`, wantField: "admin", wantMsg: "unknown field"},
		{name: "trailing object", body: `{"deposit":"1"}{"deposit":"2"}`, wantField: "body", wantMsg: "single JSON object"},
		{name: "too large", body: `{"deposit":"` + strings.Repeat("9", maxBodyBytes) + `"}`, wantField: "body", wantMsg: "must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst fundBody
			err := decodeBody(httptest.NewRecorder(), r, &dst)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("decodeBody() = %v, want nil", err)
				}
				return
			}

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("decodeBody() = %v, want *domain.ValidationError", err)
			}
			if msg := ve.Fields[tt.wantField]; !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("Fields[%q] = %q, want it to contain %q (fields %v)", tt.wantField, msg, tt.wantMsg, ve.Fields)
			}
		})
	}
}

func TestDecodeAndValidate_WritesProblem(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/escrow", strings.NewReader(`nope`))

	if decodeAndValidate(rec, r, &fundBody{}) {
		t.Fatal("decodeAndValidate() = true for invalid body")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
