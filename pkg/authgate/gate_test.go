package authgate_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerbankroll/sessioncore/pkg/authgate"
	"github.com/pokerbankroll/sessioncore/pkg/oidc"
)

// gateFixture hosts a JWKS endpoint and a verifier around one RSA key.
type gateFixture struct {
	key      *rsa.PrivateKey
	verifier *oidc.Verifier
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc := map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": "gate-key",
				"use": "sig",
				"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(srv.Close)

	cfg := oidc.DefaultConfig()
	cfg.JWKSURL = srv.URL

	verifier, err := oidc.NewVerifier(cfg)
	require.NoError(t, err)
	return &gateFixture{key: key, verifier: verifier}
}

func (f *gateFixture) token(t *testing.T, subject, scope string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   subject,
		"scope": scope,
		"name":  "Test Player",
		"email": "player@example.com",
		"aud":   "account",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "gate-key"
	signed, err := token.SignedString(f.key)
	require.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	f := newGateFixture(t)
	gate := authgate.New(f.verifier)

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()
		ec := gate.Authenticate(context.Background(), f.token(t, "user-1", "openid"))
		assert.True(t, ec.Authenticated())
		assert.Equal(t, "user-1", ec.Subject())
		assert.NotEqual(t, uuid.Nil, ec.RequestID)
	})

	t.Run("missing token degrades to anonymous", func(t *testing.T) {
		t.Parallel()
		ec := gate.Authenticate(context.Background(), "")
		assert.False(t, ec.Authenticated())
		assert.Empty(t, ec.Subject())
	})

	t.Run("garbage token degrades to anonymous", func(t *testing.T) {
		t.Parallel()
		ec := gate.Authenticate(context.Background(), "junk.token.value")
		assert.False(t, ec.Authenticated())
	})
}

func TestRequire(t *testing.T) {
	t.Parallel()
	f := newGateFixture(t)

	t.Run("enforcement on, scope granted", func(t *testing.T) {
		t.Parallel()
		gate := authgate.New(f.verifier, authgate.WithScopeEnforcement(true))

		ec, err := gate.Require(context.Background(),
			f.token(t, "user-1", "openid session:create"),
			authgate.ScopeSessionCreate,
		)
		require.NoError(t, err)
		assert.Equal(t, "user-1", ec.Subject())
	})

	t.Run("enforcement on, scope missing", func(t *testing.T) {
		t.Parallel()
		gate := authgate.New(f.verifier, authgate.WithScopeEnforcement(true))

		_, err := gate.Require(context.Background(),
			f.token(t, "user-1", "openid"),
			authgate.ScopeSessionUpdate,
		)
		require.ErrorIs(t, err, oidc.ErrInsufficientScope)

		var authErr *oidc.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, []string{authgate.ScopeSessionUpdate}, authErr.Missing)
	})

	t.Run("enforcement off skips scope checks entirely", func(t *testing.T) {
		t.Parallel()
		gate := authgate.New(f.verifier)

		ec, err := gate.Require(context.Background(),
			f.token(t, "user-1", ""),
			authgate.ScopeSessionUpdate,
		)
		require.NoError(t, err)
		assert.Equal(t, "user-1", ec.Subject())
	})

	t.Run("missing token still fails", func(t *testing.T) {
		t.Parallel()
		gate := authgate.New(f.verifier)

		_, err := gate.Require(context.Background(), "")
		assert.ErrorIs(t, err, oidc.ErrNoToken)
	})
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	f := newGateFixture(t)
	gate := authgate.New(f.verifier)

	ec := gate.Authenticate(context.Background(), f.token(t, "user-1", "openid"))

	ctx := authgate.WithContext(context.Background(), ec)
	got, ok := authgate.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, ec.Subject(), got.Subject())
	assert.Equal(t, ec.RequestID, got.RequestID)

	_, ok = authgate.FromContext(context.Background())
	assert.False(t, ok)
}
