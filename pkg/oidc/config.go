package oidc

import "time"

// Config holds the OpenID Connect provider settings. AuthorizationURL
// and TokenURL belong to the provider's authorization-code flow and are
// surfaced for the transport layer; the verifier itself consumes only the
// JWKS endpoint and the audience allow-list.
type Config struct {
	AuthorizationURL string `env:"OIDC_AUTHORIZATION_URL"`
	TokenURL         string `env:"OIDC_TOKEN_URL"`
	JWKSURL          string `env:"OIDC_JWKS_URL,required"`

	ClientID           string   `env:"OIDC_CLIENT_ID" envDefault:"poker-bankroll-tracker"`
	PermittedAudiences []string `env:"OIDC_PERMITTED_AUDIENCES" envDefault:"account"`

	// ScopeEnforcement enables per-operation resource scope checks. When
	// off, only identity (subject) is required.
	ScopeEnforcement bool `env:"OIDC_APPLICATION_SCOPES_ENABLED" envDefault:"false"`

	// RefreshInterval bounds the age of the cached JWKS before a
	// verification triggers a background-free, in-line refetch.
	RefreshInterval time.Duration `env:"OIDC_JWKS_REFRESH_INTERVAL" envDefault:"15m"`

	// MinRefreshInterval rate-limits refetches provoked by unknown key
	// ids, so a burst of bad tokens cannot stampede the provider.
	MinRefreshInterval time.Duration `env:"OIDC_JWKS_MIN_REFRESH_INTERVAL" envDefault:"30s"`

	// HTTPTimeout caps every JWKS fetch.
	HTTPTimeout time.Duration `env:"OIDC_HTTP_TIMEOUT" envDefault:"10s"`
}

// DefaultConfig returns the provider settings with all defaults applied
// and no endpoint URLs. Useful as a test baseline.
func DefaultConfig() Config {
	return Config{
		ClientID:           "poker-bankroll-tracker",
		PermittedAudiences: []string{"account"},
		RefreshInterval:    15 * time.Minute,
		MinRefreshInterval: 30 * time.Second,
		HTTPTimeout:        10 * time.Second,
	}
}
