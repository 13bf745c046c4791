package escrow

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
)

// Amount is a non-negative quantity of value in the smallest unit. It is a
// value type; arithmetic never mutates the receiver. The wire and storage
// form is a base-10 string.
type Amount struct {
	v uint256.Int
}

// Zero is the zero Amount.
var Zero = Amount{}

// NewAmount returns an Amount holding u.
func NewAmount(u uint64) Amount {
	return Amount{v: *uint256.NewInt(u)}
}

// ParseAmount parses a base-10 string. Signs, blanks and values above
// 2^256-1 are rejected with a validation error.
func ParseAmount(s string) (Amount, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil || s == "" || s[0] == '+' || s[0] == '-' {
		return Amount{}, &domain.ValidationError{Fields: map[string]string{
			"amount": fmt.Sprintf("must be a non-negative decimal integer, got %q", s),
		}}
	}
	return Amount{v: *v}, nil
}

// MustParseAmount is ParseAmount for constants and tests. It panics on error.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the base-10 form.
func (a Amount) String() string {
	return a.v.Dec()
}

// IsZero reports whether a is zero.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// Cmp returns -1, 0 or +1 as a is less than, equal to or greater than b.
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

// Add returns a+b, failing with a validation error on overflow.
func (a Amount) Add(b Amount) (Amount, error) {
	var out Amount
	if _, overflow := out.v.AddOverflow(&a.v, &b.v); overflow {
		return Amount{}, overflowError("add", a, b)
	}
	return out, nil
}

// SaturatingSub returns a-b, or zero when b exceeds a.
func (a Amount) SaturatingSub(b Amount) Amount {
	var out Amount
	if _, underflow := out.v.SubOverflow(&a.v, &b.v); underflow {
		return Zero
	}
	return out
}

// mulDiv computes a*num/den with truncating division.
func (a Amount) mulDiv(num, den uint64) (Amount, error) {
	var out Amount
	n := uint256.NewInt(num)
	if _, overflow := out.v.MulOverflow(&a.v, n); overflow {
		return Amount{}, overflowError("multiply", a, Amount{v: *n})
	}
	out.v.Div(&out.v, uint256.NewInt(den))
	return out, nil
}

// mulUint64Saturating returns a*n, or the maximum Amount on overflow.
func (a Amount) mulUint64Saturating(n uint64) Amount {
	var out Amount
	if _, overflow := out.v.MulOverflow(&a.v, uint256.NewInt(n)); overflow {
		out.v.SetAllOne()
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(b []byte) error {
	parsed, err := ParseAmount(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON encodes the amount as a JSON string so no precision is lost in
// clients that decode numbers as float64.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a JSON string or a bare JSON integer.
func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}
	return a.UnmarshalText([]byte(s))
}

func overflowError(op string, a, b Amount) error {
	return &domain.ValidationError{Fields: map[string]string{
		"amount": fmt.Sprintf("%s overflows 256 bits: %s, %s", op, a, b),
	}}
}
