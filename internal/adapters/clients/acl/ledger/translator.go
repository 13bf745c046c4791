package ledger

import "github.com/jsamuelsen11/milestone-escrow/internal/ports"

// ToTransferRequest converts a port request to the ledger wire format.
func ToTransferRequest(req ports.TransferRequest) TransferRequestDTO {
	return TransferRequestDTO{
		IdempotencyKey: req.IdempotencyKey,
		Source:         req.Source.String(),
		Destination:    req.Destination.String(),
		Amount:         req.Amount.String(),
		Memo:           req.Memo,
	}
}
