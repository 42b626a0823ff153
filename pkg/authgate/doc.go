// Package authgate guards session operations: it combines bearer-token
// verification with per-operation scope requirements and produces the
// execution Context downstream code reads the subject from.
//
// The gate has two entry points matching the two consumer postures.
// Authenticate never fails: query-side callers get an anonymous Context
// when the credential is missing or bad, so read surfaces degrade to
// "no session" instead of erroring. Require propagates the typed
// *oidc.AuthError, which is what mutation-side callers need.
//
// Scope checks follow the enforcement toggle: when disabled only the
// identity (subject) is required; when enabled every operation requires
// "openid" and mutations additionally their resource scope
// (session:create, session:update, ...).
//
//	gate := authgate.New(verifier, authgate.WithScopeEnforcement(cfg.ScopeEnforcement))
//
//	ec, err := gate.Require(ctx, token, authgate.ScopeSessionCreate)
//	if err != nil { ... }
//	sess, err := mgr.Start(ctx, ec.Subject(), params)
package authgate
