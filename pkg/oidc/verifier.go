package oidc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pokerbankroll/sessioncore/pkg/scopes"
)

// Claims is the decoded token payload the engine consumes.
type Claims struct {
	Scope string `json:"scope"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is a verified caller: the token subject plus the granted
// scope set.
type Identity struct {
	Subject string
	Name    string
	Email   string
	Scopes  []string
}

// HasScope reports whether the identity carries the scope grant.
func (id *Identity) HasScope(scope string) bool {
	return id != nil && scopes.Has(id.Scopes, scope)
}

// Verifier validates bearer tokens against the provider's rotating key
// set and audience allow-list. Verification never mutates any state
// other than the key cache.
type Verifier struct {
	keys      *KeySet
	audiences []string
	log       *slog.Logger
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithLogger sets the logger used by the verifier and its key set.
func WithLogger(l *slog.Logger) VerifierOption {
	return func(v *Verifier) {
		if l != nil {
			v.log = l
		}
	}
}

// WithVerifierHTTPClient overrides the JWKS fetch client.
func WithVerifierHTTPClient(c *http.Client) VerifierOption {
	return func(v *Verifier) {
		if c != nil && v.keys != nil {
			v.keys.client = c
		}
	}
}

// NewVerifier creates a Verifier from provider configuration.
func NewVerifier(cfg Config, opts ...VerifierOption) (*Verifier, error) {
	if strings.TrimSpace(cfg.JWKSURL) == "" {
		return nil, ErrMissingJWKSURL
	}

	v := &Verifier{
		audiences: cfg.PermittedAudiences,
		log:       slog.Default(),
	}
	v.keys = NewKeySet(cfg.JWKSURL,
		WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		WithRefreshInterval(cfg.RefreshInterval),
		WithMinRefreshInterval(cfg.MinRefreshInterval),
	)

	for _, opt := range opts {
		opt(v)
	}
	v.keys.log = v.log

	return v, nil
}

// Verify validates the bearer token and checks that every required scope
// is granted. The empty token is a distinct outcome (Unauthenticated)
// rather than a parse failure. All failures are *AuthError values.
func (v *Verifier) Verify(ctx context.Context, token string, required ...string) (*Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, newUnauthenticated()
	}

	claims := &Claims{}
	parsed, err := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	).ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token header has no kid")
		}
		return v.keys.Key(ctx, kid)
	})
	if err != nil || !parsed.Valid {
		return nil, newInvalidToken(err)
	}

	if !v.audiencePermitted(claims.Audience) {
		return nil, newInvalidToken(errors.New("audience not permitted"))
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, newInvalidToken(errors.New("token has no subject"))
	}

	granted := scopes.Parse(claims.Scope)
	if missing := scopes.Missing(granted, required); len(missing) > 0 {
		return nil, newInsufficientScope(required, missing)
	}

	return &Identity{
		Subject: claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Scopes:  granted,
	}, nil
}

// audiencePermitted accepts the token when any of its audiences is on
// the allow-list, or when no allow-list is configured.
func (v *Verifier) audiencePermitted(aud jwt.ClaimStrings) bool {
	if len(v.audiences) == 0 {
		return true
	}
	for _, a := range aud {
		if slices.Contains(v.audiences, a) {
			return true
		}
	}
	return false
}
