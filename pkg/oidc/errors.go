package oidc

import (
	"errors"
	"fmt"

	"github.com/pokerbankroll/sessioncore/pkg/scopes"
)

var (
	// ErrNoToken indicates the request carried no bearer token at all.
	ErrNoToken = errors.New("oidc: missing bearer token")

	// ErrInvalidToken indicates a malformed, expired, badly signed or
	// wrong-audience token.
	ErrInvalidToken = errors.New("oidc: could not validate credentials")

	// ErrInsufficientScope indicates a valid identity lacking a required
	// scope grant.
	ErrInsufficientScope = errors.New("oidc: not enough permissions")

	// ErrUnknownKeyID indicates the token's kid is absent from the key
	// set even after a refresh.
	ErrUnknownKeyID = errors.New("oidc: unknown signing key id")

	// ErrJWKSUnavailable indicates the provider's JWKS endpoint could not
	// be fetched or decoded.
	ErrJWKSUnavailable = errors.New("oidc: jwks fetch failed")

	// ErrMissingJWKSURL indicates verifier construction without a JWKS
	// endpoint configured.
	ErrMissingJWKSURL = errors.New("oidc: jwks url is required")
)

// Kind classifies an authentication failure.
type Kind string

const (
	KindUnauthenticated   Kind = "unauthenticated"
	KindInvalidToken      Kind = "invalid_token"
	KindInsufficientScope Kind = "insufficient_scope"
)

// AuthError is the typed outcome of a failed verification. It wraps one
// of the package sentinels (so errors.Is keeps working) and carries the
// suggested HTTP status and WWW-Authenticate challenge the web-auth
// convention expects.
type AuthError struct {
	Kind      Kind
	Status    int
	Challenge string
	// Missing lists the absent scopes for insufficient-scope failures.
	Missing []string

	err error
}

func (e *AuthError) Error() string { return e.err.Error() }

func (e *AuthError) Unwrap() error { return e.err }

func newUnauthenticated() *AuthError {
	return &AuthError{
		Kind:      KindUnauthenticated,
		Status:    401,
		Challenge: "Bearer",
		err:       ErrNoToken,
	}
}

func newInvalidToken(cause error) *AuthError {
	err := ErrInvalidToken
	if cause != nil {
		err = errors.Join(ErrInvalidToken, cause)
	}
	return &AuthError{
		Kind:   KindInvalidToken,
		Status: 403,
		err:    err,
	}
}

func newInsufficientScope(required, missing []string) *AuthError {
	return &AuthError{
		Kind:      KindInsufficientScope,
		Status:    401,
		Challenge: fmt.Sprintf("Bearer scope=%q", scopes.Join(required)),
		Missing:   missing,
		err:       fmt.Errorf("%w: missing %s", ErrInsufficientScope, scopes.Join(missing)),
	}
}
