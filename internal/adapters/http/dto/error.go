package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/auth"
)

// ProblemContentType is the media type of every error body.
const ProblemContentType = "application/problem+json"

// Problem codes. Clients branch on Code; Detail is for humans.
const (
	CodeUnauthenticated   = "unauthenticated"
	CodeValidation        = "validation_failed"
	CodeNotFound          = "not_found"
	CodeForbidden         = "forbidden"
	CodeInvalidState      = "invalid_state"
	CodeConflict          = "conflict"
	CodeInsufficientFunds = "insufficient_funds"
	CodeUnavailable       = "upstream_unavailable"
	CodeTimeout           = "timeout"
	CodeInternal          = "internal"
)

// Problem is an RFC 9457 problem document with a stable machine code.
type Problem struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Code     string       `json:"code"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
}

// FieldError is one rejected input field. Location is prefixed with body,
// path or header; bare field names are body fields.
type FieldError struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// classes is checked in order; the first sentinel err wraps wins.
var classes = []struct {
	target error
	status int
	code   string
}{
	{auth.ErrMissingToken, http.StatusUnauthorized, CodeUnauthenticated},
	{auth.ErrInvalidToken, http.StatusUnauthorized, CodeUnauthenticated},
	{domain.ErrValidation, http.StatusBadRequest, CodeValidation},
	{domain.ErrNotFound, http.StatusNotFound, CodeNotFound},
	{domain.ErrUnauthorized, http.StatusForbidden, CodeForbidden},
	{domain.ErrInvalidState, http.StatusConflict, CodeInvalidState},
	{domain.ErrConflict, http.StatusConflict, CodeConflict},
	{domain.ErrInsufficientFunds, http.StatusUnprocessableEntity, CodeInsufficientFunds},
	{domain.ErrUnavailable, http.StatusBadGateway, CodeUnavailable},
}

// Classify returns the HTTP status and problem code for err.
func Classify(err error) (status int, code string) {
	for _, c := range classes {
		if errors.Is(err, c.target) {
			return c.status, c.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

// NewProblem builds the problem document for err. Server-side failures get a
// generic detail; the cause belongs in the log, not the response.
func NewProblem(r *http.Request, err error) Problem {
	status, code := Classify(err)
	detail := err.Error()
	switch status {
	case http.StatusInternalServerError:
		detail = "the request could not be completed"
	case http.StatusBadGateway:
		detail = "a downstream dependency is unavailable"
	}

	p := newProblem(r, status, code, detail)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		p.Errors = fieldErrors(verr.Fields)
	}
	return p
}

// TimeoutProblem is sent when the request deadline passes before the
// handler responds.
func TimeoutProblem(r *http.Request) Problem {
	return newProblem(r, http.StatusGatewayTimeout, CodeTimeout,
		"the request did not finish in time; retry with the same Idempotency-Key")
}

func newProblem(r *http.Request, status int, code, detail string) Problem {
	return Problem{
		Type:     "urn:milestone-escrow:problem:" + strings.ReplaceAll(code, "_", "-"),
		Title:    http.StatusText(status),
		Status:   status,
		Code:     code,
		Detail:   detail,
		Instance: r.URL.RequestURI(),
	}
}

// WriteError writes the problem document for err.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	WriteProblem(w, r, NewProblem(r, err))
}

// WriteProblem writes p with its status. A 401 carries the bearer challenge.
func WriteProblem(w http.ResponseWriter, r *http.Request, p Problem) {
	w.Header().Set("Content-Type", ProblemContentType)
	if p.Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="escrow"`)
	}
	w.WriteHeader(p.Status)

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode problem",
			slog.String("code", p.Code),
			slog.Any("error", err),
		)
	}
}

func fieldErrors(fields map[string]string) []FieldError {
	out := make([]FieldError, 0, len(fields))
	for field, msg := range fields {
		loc := field
		if !strings.Contains(field, ".") {
			loc = "body." + field
		}
		out = append(out, FieldError{Location: loc, Message: msg})
	}
	slices.SortFunc(out, func(a, b FieldError) int { return strings.Compare(a.Location, b.Location) })
	return out
}
