package authgate

import (
	"context"

	"github.com/google/uuid"

	"github.com/pokerbankroll/sessioncore/pkg/oidc"
)

// Context is the per-operation execution context the gate constructs
// once and passes to every downstream operation. Identity is nil for
// anonymous callers.
type Context struct {
	RequestID uuid.UUID
	Identity  *oidc.Identity
}

// Authenticated reports whether the caller presented a valid identity.
func (c Context) Authenticated() bool {
	return c.Identity != nil
}

// Subject returns the verified token subject, or the empty string for
// anonymous callers.
func (c Context) Subject() string {
	if c.Identity == nil {
		return ""
	}
	return c.Identity.Subject
}

// ctxKey is a private type so the execution context can never be
// shadowed or looked up by a string key.
type ctxKey struct{}

// WithContext attaches the execution context to a context.Context.
func WithContext(ctx context.Context, ec Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, ec)
}

// FromContext retrieves the execution context; ok is false when no gate
// ran for this request.
func FromContext(ctx context.Context) (Context, bool) {
	ec, ok := ctx.Value(ctxKey{}).(Context)
	return ec, ok
}
