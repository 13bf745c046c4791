package escrow

import (
	"fmt"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
)

// BpsDenominator is the basis-point scale: 10000 bps = 100%.
const BpsDenominator = 10_000

// Default fee rates applied at construction.
const (
	DefaultClientFeeBps     uint16 = 200
	DefaultFreelancerFeeBps uint16 = 300
)

// NetFunding is what a gross client payment is worth after the client fee.
func NetFunding(gross Amount, clientFeeBps uint16) (Amount, error) {
	return applyFee(gross, clientFeeBps)
}

// NetPayout is what the freelancer receives for a milestone of the given value.
func NetPayout(value Amount, freelancerFeeBps uint16) (Amount, error) {
	return applyFee(value, freelancerFeeBps)
}

func applyFee(a Amount, bps uint16) (Amount, error) {
	if bps > BpsDenominator {
		return Amount{}, &domain.ValidationError{Fields: map[string]string{
			"fee_bps": fmt.Sprintf("must be 0-%d, got %d", BpsDenominator, bps),
		}}
	}
	return a.mulDiv(uint64(BpsDenominator-bps), BpsDenominator)
}
