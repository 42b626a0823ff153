package oidc

import "strings"

// ParseBearer extracts the token from an "Authorization: Bearer <token>"
// header value per RFC 6750. The second return is false when the header
// is absent or not a bearer credential.
func ParseBearer(authorization string) (string, bool) {
	const prefix = "Bearer "
	if len(authorization) <= len(prefix) || !strings.EqualFold(authorization[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(authorization[len(prefix):])
	return token, token != ""
}
