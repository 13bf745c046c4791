package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/auth"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/logging"
)

// maxBodyBytes caps request bodies. Escrow requests are a few hundred bytes.
const maxBodyBytes = 64 << 10

// parseID reads a schedule id from the chi route.
func parseID(r *http.Request, param string) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, param), 10, 64)
	if err != nil {
		return 0, invalid("path."+param, "must be a non-negative integer")
	}
	return id, nil
}

// callerOf returns the authenticated caller or answers 401.
func callerOf(w http.ResponseWriter, r *http.Request) (escrow.AccountID, bool) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		dto.WriteError(w, r, auth.ErrMissingToken)
	}
	return caller, ok
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "writing response body failed",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
}

type validatable interface {
	Validate() error
}

// decodeAndValidate reads exactly one JSON object into dst and validates it.
// On failure it has already written the problem response.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	err := decodeBody(w, r, dst)
	if err == nil {
		err = dst.Validate()
	}
	if err != nil {
		dto.WriteError(w, r, err)
		return false
	}
	return true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return bodyError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return invalid("body", "must contain a single JSON object")
	}
	return nil
}

// bodyError describes a decode failure without echoing the payload.
func bodyError(err error) error {
	var (
		syntax   *json.SyntaxError
		mismatch *json.UnmarshalTypeError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return invalid("body", "must not be empty")
	case errors.As(err, &syntax):
		return invalid("body", fmt.Sprintf("malformed JSON at offset %d", syntax.Offset))
	case errors.Is(err, io.ErrUnexpectedEOF):
		return invalid("body", "malformed JSON")
	case errors.As(err, &mismatch) && mismatch.Field != "":
		return invalid(mismatch.Field, "must be a "+mismatch.Type.Kind().String()+", got "+mismatch.Value)
	case errors.As(err, &tooLarge):
		return invalid("body", fmt.Sprintf("must not exceed %d bytes", tooLarge.Limit))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return invalid(strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`), "unknown field")
	default:
		return invalid("body", "invalid JSON")
	}
}

func invalid(field, msg string) error {
	return &domain.ValidationError{Fields: map[string]string{field: msg}}
}
