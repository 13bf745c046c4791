package escrow

import "strings"

// AccountID is an opaque, authenticated account identity.
type AccountID string

// IsZero reports whether the id is blank.
func (a AccountID) IsZero() bool {
	return strings.TrimSpace(string(a)) == ""
}

// String implements fmt.Stringer.
func (a AccountID) String() string {
	return string(a)
}
