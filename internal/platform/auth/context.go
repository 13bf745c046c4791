package auth

import (
	"context"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
)

type callerKey struct{}

// WithCaller returns a copy of ctx carrying the authenticated caller.
func WithCaller(ctx context.Context, caller escrow.AccountID) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the authenticated caller, if any.
func CallerFromContext(ctx context.Context) (escrow.AccountID, bool) {
	caller, ok := ctx.Value(callerKey{}).(escrow.AccountID)
	return caller, ok && !caller.IsZero()
}
