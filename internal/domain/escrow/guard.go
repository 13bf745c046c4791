package escrow

import (
	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
)

// Role names a privileged party of the contract.
type Role uint8

const (
	RoleOwner Role = 1 << iota
	RoleClient
	RoleFreelancer
)

// String implements fmt.Stringer.
func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleClient:
		return "client"
	case RoleFreelancer:
		return "freelancer"
	case RoleClient | RoleFreelancer:
		return "client or freelancer"
	default:
		return "unknown role"
	}
}

// Authorize fails with domain.ErrUnauthorized unless caller holds one of the
// roles in the set. The client role cannot be held while the client is still
// the contract's own identity.
func (c *Contract) Authorize(caller AccountID, roles Role) error {
	if caller.IsZero() {
		return domain.Rejectf(domain.ErrUnauthorized, "caller identity is required")
	}
	if roles&RoleOwner != 0 && caller == c.Owner {
		return nil
	}
	if roles&RoleFreelancer != 0 && caller == c.Freelancer {
		return nil
	}
	if roles&RoleClient != 0 && c.Client != c.Self && caller == c.Client {
		return nil
	}
	return domain.Rejectf(domain.ErrUnauthorized, "%s only", roles)
}
