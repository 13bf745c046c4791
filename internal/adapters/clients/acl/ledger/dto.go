// Package ledger holds the downstream ledger's wire types and their
// translation from escrow port types.
package ledger

// TransferRequestDTO is the body of POST /api/v1/transfers. Amount is a
// base-10 string so no precision is lost.
type TransferRequestDTO struct {
	IdempotencyKey string `json:"idempotency_key"`
	Source         string `json:"source"`
	Destination    string `json:"destination"`
	Amount         string `json:"amount"`
	Memo           string `json:"memo,omitempty"`
}

// TransferResponseDTO is the ledger's acknowledgement.
type TransferResponseDTO struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
