// Package acl is the anti-corruption layer between the escrow domain and the
// value ledger. Wire types live in the ledger subpackage; this package owns
// the request lifecycle and maps ledger failures onto domain errors.
package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
)

const maxProblemBytes = 64 << 10

// ledgerProblem is the ledger's RFC 9457 error body.
type ledgerProblem struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Errors []struct {
		Location string `json:"location"`
		Message  string `json:"message"`
	} `json:"errors"`
}

// insufficientFundsCode is the ledger's code for an escrow account that
// cannot cover the transfer.
const insufficientFundsCode = "insufficient_funds"

// statusErrors maps ledger statuses to the domain. 409 means the ledger has
// already applied the idempotency key. 429 and 5xx are retryable.
var statusErrors = map[int]error{
	http.StatusBadRequest:          domain.ErrValidation,
	http.StatusUnprocessableEntity: domain.ErrValidation,
	http.StatusPaymentRequired:     domain.ErrInsufficientFunds,
	http.StatusUnauthorized:        domain.ErrUnauthorized,
	http.StatusForbidden:           domain.ErrUnauthorized,
	http.StatusNotFound:            domain.ErrNotFound,
	http.StatusConflict:            domain.ErrConflict,
	http.StatusTooManyRequests:     domain.ErrUnavailable,
}

// responseError turns a rejected ledger response into a domain error.
func responseError(resp *http.Response) error {
	p := readProblem(resp)

	detail := p.Detail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	if p.Code == insufficientFundsCode {
		return fmt.Errorf("ledger: %s: %w", detail, domain.ErrInsufficientFunds)
	}

	sentinel, ok := statusErrors[resp.StatusCode]
	switch {
	case ok && errors.Is(sentinel, domain.ErrValidation) && len(p.Errors) > 0:
		fields := make(map[string]string, len(p.Errors))
		for _, e := range p.Errors {
			fields[strings.TrimPrefix(e.Location, "body.")] = e.Message
		}
		return &domain.ValidationError{Fields: fields}
	case ok:
		return fmt.Errorf("ledger: %s: %w", detail, sentinel)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("ledger: %s: %w", detail, domain.ErrUnavailable)
	default:
		return fmt.Errorf("ledger: unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// transportError marks a call that got no response as unavailable. Caller
// cancellation passes through untouched.
func transportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
}

// readProblem decodes a problem+json body; anything else yields zero.
func readProblem(resp *http.Response) ledgerProblem {
	var p ledgerProblem
	if resp.Body == nil {
		return p
	}
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mt != "application/problem+json" {
		return p
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProblemBytes)).Decode(&p); err != nil {
		return ledgerProblem{}
	}
	return p
}
