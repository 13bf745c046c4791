package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"github.com/jsamuelsen11/milestone-escrow/internal/platform/httpclient"
)

// Call is one ledger request. Accept defaults to 200 only. Out, when set,
// receives the decoded body of an accepted response.
type Call struct {
	Method string
	Path   string
	Header http.Header
	Body   any
	Accept []int
	Out    any
}

// Requester runs Calls over an httpclient.Client.
type Requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

func NewRequester(client *httpclient.Client, logger *slog.Logger) *Requester {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Requester{client: client, logger: logger}
}

// Do sends c. A status outside Accept is translated by responseError,
// including one handed back after the retries ran out.
func (r *Requester) Do(ctx context.Context, c Call) error {
	req, err := r.build(ctx, c)
	if err != nil {
		return err
	}

	accept := c.Accept
	if len(accept) == 0 {
		accept = []int{http.StatusOK}
	}

	resp, err := r.client.Do(ctx, req)
	if resp == nil {
		r.logger.WarnContext(ctx, "ledger call failed",
			slog.String("method", c.Method),
			slog.String("path", c.Path),
			slog.Any("error", err),
		)
		return fmt.Errorf("%s %s: %w", c.Method, c.Path, transportError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if !slices.Contains(accept, resp.StatusCode) {
		r.logger.WarnContext(ctx, "ledger rejected call",
			slog.String("method", c.Method),
			slog.String("path", c.Path),
			slog.Int("status", resp.StatusCode),
		)
		return responseError(resp)
	}

	if c.Out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(c.Out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding %s %s response: %w", c.Method, c.Path, err)
	}
	return nil
}

// HealthCheck reports the breaker state of the underlying client.
func (r *Requester) HealthCheck(ctx context.Context) error {
	return r.client.HealthCheck(ctx)
}

func (r *Requester) build(ctx context.Context, c Call) (*http.Request, error) {
	var body io.Reader = http.NoBody
	if c.Body != nil {
		b, err := json.Marshal(c.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", c.Method, c.Path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, c.Method, r.client.BaseURL()+c.Path, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", c.Method, c.Path, err)
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if c.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
