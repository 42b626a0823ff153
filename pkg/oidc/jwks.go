package oidc

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// KeySet is a cached view of the provider's JWKS document. It is safe
// for concurrent use: lookups take a read lock over an immutable map that
// is swapped wholesale on refresh, so readers see either the old or the
// new set, never a partial one. A failed refresh leaves the previous set
// serving.
type KeySet struct {
	url                string
	refreshInterval    time.Duration
	minRefreshInterval time.Duration
	client             *http.Client
	log                *slog.Logger

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time

	// refreshMu serializes refetches so concurrent verifications that
	// all miss the same kid collapse into a single HTTP request.
	refreshMu sync.Mutex
}

// KeySetOption configures a KeySet.
type KeySetOption func(*KeySet)

// WithHTTPClient sets the client used for JWKS fetches.
func WithHTTPClient(c *http.Client) KeySetOption {
	return func(s *KeySet) {
		if c != nil {
			s.client = c
		}
	}
}

// WithRefreshInterval sets the maximum cache age before a lookup
// triggers a refetch.
func WithRefreshInterval(d time.Duration) KeySetOption {
	return func(s *KeySet) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithMinRefreshInterval rate-limits unknown-kid refetches.
func WithMinRefreshInterval(d time.Duration) KeySetOption {
	return func(s *KeySet) {
		if d >= 0 {
			s.minRefreshInterval = d
		}
	}
}

// WithKeySetLogger sets the logger for refresh diagnostics.
func WithKeySetLogger(l *slog.Logger) KeySetOption {
	return func(s *KeySet) {
		if l != nil {
			s.log = l
		}
	}
}

// NewKeySet creates a key set for the given JWKS endpoint. No fetch
// happens until the first lookup.
func NewKeySet(url string, opts ...KeySetOption) *KeySet {
	s := &KeySet{
		url:                url,
		refreshInterval:    15 * time.Minute,
		minRefreshInterval: 30 * time.Second,
		client:             &http.Client{Timeout: 10 * time.Second},
		log:                slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key resolves a signing key by its kid. An unknown kid forces a fresh
// fetch (rate-limited) before failing, so key rotation at the provider is
// picked up without restarting.
func (s *KeySet) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if key, fresh := s.lookup(kid); key != nil && fresh {
		return key, nil
	} else if key != nil {
		// Known kid on a stale set: try to refresh, but a stale key is
		// still a valid key if the provider is unreachable.
		if err := s.refresh(ctx); err != nil {
			return key, nil
		}
		if key, _ := s.lookup(kid); key != nil {
			return key, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeyID, kid)
	}

	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	if key, _ := s.lookup(kid); key != nil {
		return key, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKeyID, kid)
}

// lookup returns the cached key for kid (nil if absent) and whether the
// cache is within its refresh interval.
func (s *KeySet) lookup(kid string) (*rsa.PublicKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fresh := !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < s.refreshInterval
	return s.keys[kid], fresh
}

// refresh fetches the JWKS document and swaps the key map. Concurrent
// callers are serialized; whoever arrives after a just-completed fetch
// returns immediately instead of refetching.
func (s *KeySet) refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	s.mu.RLock()
	recent := !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < s.minRefreshInterval
	s.mu.RUnlock()
	if recent {
		return nil
	}

	keys, err := s.fetch(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "jwks refresh failed, keeping previous key set",
			slog.String("url", s.url), slog.Any("error", err))
		return errors.Join(ErrJWKSUnavailable, err)
	}

	s.mu.Lock()
	s.keys = keys
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	s.log.DebugContext(ctx, "jwks refreshed", slog.Int("keys", len(keys)))
	return nil
}

type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (s *KeySet) fetch(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from jwks endpoint", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		if k.Use != "" && k.Use != "sig" {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			s.log.Warn("skipping malformed jwk", slog.String("kid", k.Kid), slog.Any("error", err))
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, errors.New("jwks document contains no usable RSA signing keys")
	}
	return keys, nil
}

// publicKey decodes the base64url modulus and exponent into an
// rsa.PublicKey.
func (k jwk) publicKey() (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent: %w", err)
	}

	e := new(big.Int).SetBytes(eb)
	if !e.IsInt64() || e.Int64() <= 0 || e.Int64() > int64(1<<31-1) {
		return nil, errors.New("exponent out of range")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: int(e.Int64()),
	}, nil
}
