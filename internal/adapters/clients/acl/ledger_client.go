package acl

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/clients/acl/ledger"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/httpclient"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.Transferer    = (*LedgerClient)(nil)
	_ ports.HealthChecker = (*LedgerClient)(nil)
)

const transfersPath = "/api/v1/transfers"

// LedgerClient is the outbound adapter for the downstream value ledger. It
// implements [ports.Transferer].
//
// Every transfer carries the outbox message id as its Idempotency-Key, both
// in the header and in the body, so a retried delivery cannot move value
// twice. The underlying [httpclient.Client] provides circuit breaking, retry,
// rate limiting and tracing.
type LedgerClient struct {
	req    *Requester
	logger *slog.Logger
}

// NewLedgerClient creates a LedgerClient. The client's BaseURL should point
// to the ledger API root.
func NewLedgerClient(client *httpclient.Client, logger *slog.Logger) *LedgerClient {
	return &LedgerClient{
		req:    NewRequester(client, logger),
		logger: logger,
	}
}

// Transfer submits POST /api/v1/transfers. 201 and 202 are success. A 409
// means the ledger already applied this key and surfaces as
// domain.ErrConflict; the dispatcher counts that as delivered. A source the
// ledger cannot debit surfaces as domain.ErrInsufficientFunds.
func (c *LedgerClient) Transfer(ctx context.Context, req ports.TransferRequest) error {
	var resp ledger.TransferResponseDTO
	err := c.req.Do(ctx, Call{
		Method: http.MethodPost,
		Path:   transfersPath,
		Header: http.Header{httpclient.IdempotencyKeyHeader: {req.IdempotencyKey}},
		Body:   ledger.ToTransferRequest(req),
		Accept: []int{http.StatusCreated, http.StatusAccepted},
		Out:    &resp,
	})
	if err != nil {
		return err
	}

	c.logger.DebugContext(ctx, "ledger transfer accepted",
		slog.String("idempotency_key", req.IdempotencyKey),
		slog.String("transfer_id", resp.ID),
		slog.String("status", resp.Status),
	)
	return nil
}

// Name identifies the ledger in health reports.
func (c *LedgerClient) Name() string {
	return "ledger"
}

// HealthCheck reports the ledger circuit breaker; it makes no call.
func (c *LedgerClient) HealthCheck(ctx context.Context) error {
	return c.req.HealthCheck(ctx)
}
