package authgate

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pokerbankroll/sessioncore/pkg/oidc"
)

// Scope names for the session resource, mirroring what the identity
// provider issues.
const (
	ScopeOpenID        = "openid"
	ScopeSessionCreate = "session:create"
	ScopeSessionRead   = "session:read"
	ScopeSessionUpdate = "session:update"
	ScopeSessionDelete = "session:delete"
)

// Gate authorizes session operations. It owns no mutable state beyond
// the verifier's key cache and is safe for concurrent use.
type Gate struct {
	verifier      *oidc.Verifier
	enforceScopes bool
	log           *slog.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithScopeEnforcement toggles resource-scope checks. Off means only a
// valid identity is required.
func WithScopeEnforcement(enabled bool) Option {
	return func(g *Gate) { g.enforceScopes = enabled }
}

// WithLogger sets the logger for authorization diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates a Gate around a verifier.
func New(verifier *oidc.Verifier, opts ...Option) *Gate {
	g := &Gate{
		verifier: verifier,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authenticate resolves the bearer token to an execution context and
// never fails: a missing or invalid credential yields an anonymous
// Context, letting query-side consumers degrade gracefully.
func (g *Gate) Authenticate(ctx context.Context, token string) Context {
	ec := Context{RequestID: uuid.New()}

	identity, err := g.verifier.Verify(ctx, token, g.required()...)
	if err != nil {
		g.log.DebugContext(ctx, "anonymous request",
			slog.String("request_id", ec.RequestID.String()),
			slog.Any("reason", err),
		)
		return ec
	}

	ec.Identity = identity
	return ec
}

// Require resolves the bearer token and enforces the operation's
// resource scopes, propagating the typed *oidc.AuthError on failure.
// Mutation-side consumers call this.
func (g *Gate) Require(ctx context.Context, token string, resourceScopes ...string) (Context, error) {
	identity, err := g.verifier.Verify(ctx, token, g.required(resourceScopes...)...)
	if err != nil {
		return Context{}, err
	}
	return Context{RequestID: uuid.New(), Identity: identity}, nil
}

// required computes the scope requirement for an operation: nothing
// when enforcement is off, otherwise openid plus the operation's
// resource scopes.
func (g *Gate) required(resourceScopes ...string) []string {
	if !g.enforceScopes {
		return nil
	}
	return append([]string{ScopeOpenID}, resourceScopes...)
}
