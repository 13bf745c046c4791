// Package auth verifies bearer tokens and resolves the calling account.
//
// Tokens are HS256-signed JWTs whose "sub" claim is the caller's account id.
// The verifier pins the signing method, requires an expiry, and checks the
// issuer when one is configured.
//
//	v := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Leeway)
//	caller, err := v.Verify(auth.ExtractBearer(r.Header.Get("Authorization")))
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
)

// ErrMissingToken is returned when no bearer token was presented.
var ErrMissingToken = errors.New("missing bearer token")

// ErrInvalidToken wraps every verification failure.
var ErrInvalidToken = errors.New("invalid bearer token")

// Verifier validates bearer tokens.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier creates a Verifier for HS256 tokens signed with secret.
// An empty issuer disables the issuer check.
func NewVerifier(secret, issuer string, leeway time.Duration) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}
}

// Verify parses token and returns the caller account from its subject.
func (v *Verifier) Verify(token string) (escrow.AccountID, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := v.parser.ParseWithClaims(token, claims, v.key); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	caller := escrow.AccountID(claims.Subject)
	if caller.IsZero() {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	return caller, nil
}

func (v *Verifier) key(*jwt.Token) (any, error) {
	return v.secret, nil
}

// ExtractBearer returns the token from an Authorization header value,
// or "" when the header is absent or not a bearer credential.
func ExtractBearer(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
