// Package scopes handles the space-delimited OAuth2 scope strings carried
// in identity tokens.
//
// Scopes are exact-match resource grants such as "openid" or
// "session:update"; there are no wildcard or hierarchy semantics. The
// package converts between the wire form (a single space-separated claim
// string) and slices, and answers the two questions authorization code
// asks: does the grant set cover every required scope, and if not, which
// ones are missing (for building the WWW-Authenticate challenge).
//
//	granted := scopes.Parse("openid session:read")
//	missing := scopes.Missing(granted, []string{"openid", "session:update"})
//	// missing == []string{"session:update"}
package scopes
