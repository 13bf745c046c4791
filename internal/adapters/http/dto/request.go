package dto

import (
	"strings"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
)

const (
	msgRequired  = "is required"
	msgBadAmount = "must be a non-negative base-10 integer below 2^256"
)

// ConstructRequest is the body of POST /api/v1/escrow. The caller becomes
// the freelancer.
type ConstructRequest struct {
	Owner    string `json:"owner"`
	Treasury string `json:"treasury"`
}

// Validate checks that both identities are present.
func (r *ConstructRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Owner) == "" {
		fields["owner"] = msgRequired
	}
	if strings.TrimSpace(r.Treasury) == "" {
		fields["treasury"] = msgRequired
	}

	return fieldsErr(fields)
}

// SetTreasuryRequest is the body of PUT /api/v1/escrow/treasury.
type SetTreasuryRequest struct {
	Treasury string `json:"treasury"`
}

// Validate checks that the treasury is present.
func (r *SetTreasuryRequest) Validate() error {
	if strings.TrimSpace(r.Treasury) == "" {
		return fieldsErr(map[string]string{"treasury": msgRequired})
	}
	return nil
}

// AddScheduleRequest is the body of POST /api/v1/escrow/schedules. Value is
// a decimal string so 256-bit amounts survive JSON.
type AddScheduleRequest struct {
	ShortCode   string `json:"short_code"`
	Description string `json:"description"`
	Value       string `json:"value"`
}

// Validate checks that short_code is present and value parses. The
// description may be empty.
func (r *AddScheduleRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.ShortCode) == "" {
		fields["short_code"] = msgRequired
	}
	if _, err := escrow.ParseAmount(r.Value); err != nil {
		fields["value"] = msgBadAmount
	}

	return fieldsErr(fields)
}

// Amount returns the parsed value. Call after Validate.
func (r *AddScheduleRequest) Amount() escrow.Amount {
	a, _ := escrow.ParseAmount(r.Value)
	return a
}

// FundRequest is the body of POST /api/v1/escrow/schedules/{id}/fund. The
// deposit is the value attached to the call.
type FundRequest struct {
	Deposit string `json:"deposit"`
}

// Validate checks that the deposit parses.
func (r *FundRequest) Validate() error {
	if _, err := escrow.ParseAmount(r.Deposit); err != nil {
		return fieldsErr(map[string]string{"deposit": msgBadAmount})
	}
	return nil
}

// Amount returns the parsed deposit. Call after Validate.
func (r *FundRequest) Amount() escrow.Amount {
	a, _ := escrow.ParseAmount(r.Deposit)
	return a
}

func fieldsErr(fields map[string]string) error {
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
