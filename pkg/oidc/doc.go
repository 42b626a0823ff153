// Package oidc verifies bearer tokens issued by an OpenID Connect
// provider and resolves them to an Identity with a granted scope set.
//
// Verification is asymmetric: the provider publishes a JWKS document and
// tokens carry a kid header naming the signing key. KeySet caches the
// fetched keys, refreshes them on a timer and on sight of an unknown kid
// (rate-limited), and keeps serving the previous set when a refresh
// fails. Readers always observe a complete key map, never a partial one.
//
// Failures are reported as *AuthError values carrying a Kind, a suggested
// HTTP status and, where the web-auth convention calls for one, a
// WWW-Authenticate challenge. This is the single place in the module
// where an error carries transport-flavored metadata; everything else
// returns bare kinds for the transport layer to map.
//
// # Usage
//
//	var cfg oidc.Config
//	config.MustLoad(&cfg)
//
//	verifier, err := oidc.NewVerifier(cfg)
//	if err != nil { ... }
//
//	identity, err := verifier.Verify(ctx, token, "openid", "session:update")
package oidc
