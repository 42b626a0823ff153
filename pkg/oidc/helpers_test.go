package oidc_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// signingKey pairs an RSA key with the kid it is published under.
type signingKey struct {
	kid string
	key *rsa.PrivateKey
}

func newSigningKey(t *testing.T, kid string) signingKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return signingKey{kid: kid, key: key}
}

// jwksServer serves a JWKS document for a mutable set of keys and counts
// fetches, so tests can assert on refresh behavior.
type jwksServer struct {
	mu     sync.Mutex
	keys   []signingKey
	hits   int
	broken bool

	srv *httptest.Server
}

func newJWKSServer(t *testing.T, keys ...signingKey) *jwksServer {
	t.Helper()
	s := &jwksServer{keys: keys}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.hits++
		if s.broken {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		type jwk struct {
			Kty string `json:"kty"`
			Kid string `json:"kid"`
			Use string `json:"use"`
			Alg string `json:"alg"`
			N   string `json:"n"`
			E   string `json:"e"`
		}
		doc := struct {
			Keys []jwk `json:"keys"`
		}{}
		for _, k := range s.keys {
			pub := &k.key.PublicKey
			doc.Keys = append(doc.Keys, jwk{
				Kty: "RSA",
				Kid: k.kid,
				Use: "sig",
				Alg: "RS256",
				N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *jwksServer) URL() string { return s.srv.URL }

func (s *jwksServer) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

func (s *jwksServer) SetKeys(keys ...signingKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = keys
}

func (s *jwksServer) SetBroken(broken bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broken = broken
}

// tokenClaims is the claim set the tests sign into tokens.
type tokenClaims struct {
	Scope string `json:"scope,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type tokenOpt func(*tokenClaims)

func withScope(scope string) tokenOpt {
	return func(c *tokenClaims) { c.Scope = scope }
}

func withAudience(aud ...string) tokenOpt {
	return func(c *tokenClaims) { c.Audience = aud }
}

func withSubject(sub string) tokenOpt {
	return func(c *tokenClaims) { c.Subject = sub }
}

func withExpiry(exp time.Time) tokenOpt {
	return func(c *tokenClaims) { c.ExpiresAt = jwt.NewNumericDate(exp) }
}

func signToken(t *testing.T, sk signingKey, opts ...tokenOpt) string {
	t.Helper()
	claims := &tokenClaims{
		Scope: "openid",
		Name:  "Test Player",
		Email: "player@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{"account"},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	for _, opt := range opts {
		opt(claims)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = sk.kid
	signed, err := token.SignedString(sk.key)
	require.NoError(t, err)
	return signed
}
